package queries

import (
	"context"
	"errors"

	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetStatusCountsQueryIsNotConstructed = errors.New(
		"GetStatusCountsQuery must be created via NewGetStatusCountsQuery constructor",
	)
)

// GetStatusCountsQuery counts orders per status.
type GetStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatusCountsQuery creates the query. It takes no parameters.
func NewGetStatusCountsQuery() GetStatusCountsQuery {
	return GetStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusCountsQueryIsNotConstructed)
}

// StatusCounts maps a status key to its number of orders. Missing keys count zero.
type StatusCounts map[status.Key]int

// GetStatusCountsQueryHandler runs the GROUP BY over the orders table.
type GetStatusCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusCountsQueryHandler creates a handler reading from db.
func NewGetStatusCountsQueryHandler(db *gorm.DB) GetStatusCountsQueryHandler {
	return GetStatusCountsQueryHandler{db: db}
}

// Handle counts orders per status. Statuses without orders are absent.
func (h GetStatusCountsQueryHandler) Handle(ctx context.Context, query GetStatusCountsQuery) (StatusCounts, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(StatusCounts)
	for rows.Next() {
		var (
			raw string
			n   int
		)
		if err = rows.Scan(&raw, &n); err != nil {
			return nil, err
		}
		counts[status.Key(raw)] = n
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
