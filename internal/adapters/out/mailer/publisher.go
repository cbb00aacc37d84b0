// Package mailer turns committed status changes into customer notifications.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"notpickedup/internal/core/domain/model/notification"
	"notpickedup/internal/core/domain/model/order"
	"notpickedup/internal/core/domain/services"
	"notpickedup/internal/core/ports"
)

// EmailActionSource returns the currently enabled email actions.
type EmailActionSource interface {
	EmailActions(ctx context.Context) (notification.Actions, error)
}

// Publisher implements ports.EventPublisher. The enabled action list is
// resolved on every publish so extensions see each dispatch.
type Publisher struct {
	actions    EmailActionSource
	dispatcher services.NotificationDispatcher
	notifier   ports.CustomerNotifier
	logger     *slog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher that notifies through notifier.
func NewPublisher(actions EmailActionSource, notifier ports.CustomerNotifier, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		actions:    actions,
		dispatcher: services.NewNotificationDispatcher(),
		notifier:   notifier,
		logger:     logger.With("component", "mailer"),
	}
}

// Publish notifies for every enabled action the events trigger. A failing
// notification does not stop the others; all failures are returned joined.
func (p *Publisher) Publish(ctx context.Context, events []order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	enabled, err := p.actions.EmailActions(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve email actions: %w", err)
	}

	triggered := p.dispatcher.Dispatch(events, enabled)
	p.logger.DebugContext(ctx, "Dispatching customer notifications",
		"events", len(events),
		"notifications", len(triggered),
	)

	var errList []error
	for _, n := range triggered {
		if notifyErr := p.notifier.Notify(ctx, n); notifyErr != nil {
			errList = append(errList, fmt.Errorf("notification %s for order %s: %w", n.Action, n.OrderID, notifyErr))
		}
	}
	return errors.Join(errList...)
}
