package mailer

import (
	"context"
	"log/slog"

	"notpickedup/internal/core/domain/services"
	"notpickedup/internal/core/ports"
)

// LogNotifier records the email that would be sent instead of sending it.
type LogNotifier struct {
	logger *slog.Logger
}

var _ ports.CustomerNotifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier writing to logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "customer_notifier")}
}

// Notify logs the notification that would be sent.
func (n *LogNotifier) Notify(ctx context.Context, t services.TriggeredNotification) error {
	n.logger.InfoContext(ctx, "Customer email",
		"order_id", t.OrderID.String(),
		"action", string(t.Action),
		"event_id", t.EventID.String(),
	)
	return nil
}
