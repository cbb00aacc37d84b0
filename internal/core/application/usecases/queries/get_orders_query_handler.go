package queries

import (
	"context"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the admin order list straight from the orders table.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler reading from db.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns orders sorted by id.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select("id, status").Order("id")
	if key, ok := query.Status(); ok {
		tx = tx.Where("status = ?", key.String())
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err = rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		orders = append(orders, GetOrdersQueryResponse{ID: kernel.OrderID(id), Status: status.Key(raw)})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
