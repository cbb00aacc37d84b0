package queries

import (
	"errors"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery lists orders, optionally restricted to one status.
type GetOrdersQuery struct {
	status *status.Key
	guard  guard.ConstructorGuard
}

// NewGetOrdersQuery builds the query. A nil filter lists every order.
func NewGetOrdersQuery(filter *status.Key) (GetOrdersQuery, error) {
	if filter != nil {
		if err := filter.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		key := *filter
		filter = &key
	}
	return GetOrdersQuery{status: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, if any.
func (q GetOrdersQuery) Status() (status.Key, bool) {
	if q.status == nil {
		return "", false
	}
	return *q.status, true
}

// GetOrdersQueryResponse is one row of the admin order list.
type GetOrdersQueryResponse struct {
	ID     kernel.OrderID
	Status status.Key
}
