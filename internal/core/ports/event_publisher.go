package ports

import (
	"context"

	"notpickedup/internal/core/domain/model/order"
	"notpickedup/internal/core/domain/services"
)

// EventPublisher receives committed status-change events.
type EventPublisher interface {
	// Publish handles events after their transaction committed.
	Publish(ctx context.Context, events []order.StatusChanged) error
}

// CustomerNotifier delivers one customer notification.
type CustomerNotifier interface {
	// Notify sends n to the customer of the order.
	Notify(ctx context.Context, n services.TriggeredNotification) error
}
