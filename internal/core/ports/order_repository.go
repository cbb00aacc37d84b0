package ports

import (
	"context"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/order"
)

// OrderRepository is the host's order store.
type OrderRepository interface {
	// Add persists a new order and its notes.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the current status and any notes added since loading.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order. Returns errs.ObjectNotFoundError when id does not
	// resolve to a live order.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}
