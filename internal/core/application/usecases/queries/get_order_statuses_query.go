package queries

import (
	"context"
	"errors"
	"fmt"

	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/errs"
	"notpickedup/internal/pkg/guard"
)

var (
	ErrGetOrderStatusesQueryIsNotConstructed = errors.New(
		"GetOrderStatusesQuery must be created via NewGetOrderStatusesQuery constructor",
	)
)

type (
	// StatusListSource returns the filtered host status list.
	StatusListSource interface {
		Statuses(ctx context.Context) (status.List, error)
	}

	// StatusCountSource returns the number of orders per status.
	StatusCountSource interface {
		Counts(ctx context.Context) (StatusCounts, error)
	}

	// StatusDefinitions looks up registered status definitions.
	StatusDefinitions interface {
		Get(key status.Key) (status.Definition, error)
	}
)

// GetOrderStatusesQuery lists statuses in display order with their order counts.
type GetOrderStatusesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatusesQuery creates the query. It takes no parameters.
func NewGetOrderStatusesQuery() GetOrderStatusesQuery {
	return GetOrderStatusesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusesQueryIsNotConstructed)
}

// GetOrderStatusesQueryResponse is one status link of the admin order list.
type GetOrderStatusesQueryResponse struct {
	Key        status.Key `json:"key"`
	Label      string     `json:"label"`
	Count      int        `json:"count"`
	CountLabel string     `json:"count_label"`
}

// GetOrderStatusesQueryHandler joins the filtered status list with order counts.
type GetOrderStatusesQueryHandler struct {
	statuses    StatusListSource
	counts      StatusCountSource
	definitions StatusDefinitions
}

// NewGetOrderStatusesQueryHandler creates the handler.
func NewGetOrderStatusesQueryHandler(
	statuses StatusListSource,
	counts StatusCountSource,
	definitions StatusDefinitions,
) GetOrderStatusesQueryHandler {
	return GetOrderStatusesQueryHandler{
		statuses:    statuses,
		counts:      counts,
		definitions: definitions,
	}
}

// Handle uses a registered definition's label count when there is one and
// falls back to "<label> (<n>)" for built-in statuses. Registered statuses
// that opt out of the admin status list are left out.
func (h GetOrderStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusesQuery,
) ([]GetOrderStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	list, err := h.statuses.Statuses(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := h.counts.Counts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]GetOrderStatusesQueryResponse, 0, list.Len())
	for _, entry := range list.Entries() {
		n := counts[entry.Key]

		countLabel := fmt.Sprintf("%s (%d)", entry.Label, n)
		def, defErr := h.definitions.Get(entry.Key)
		switch {
		case defErr == nil:
			if !def.Visibility().ShowInAdminStatusList {
				continue
			}
			countLabel = def.LabelCount().Format(n)
		case !errors.Is(defErr, errs.ErrObjectNotFound):
			return nil, defErr
		}

		out = append(out, GetOrderStatusesQueryResponse{
			Key:        entry.Key,
			Label:      entry.Label,
			Count:      n,
			CountLabel: countLabel,
		})
	}

	return out, nil
}
