package services

import (
	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/notification"
	"notpickedup/internal/core/domain/model/order"
)

// TriggeredNotification is one customer notification to send.
type TriggeredNotification struct {
	OrderID kernel.OrderID
	EventID kernel.UUID
	Action  notification.Action
}

// NotificationDispatcher maps status-change events to notification actions.
//
// For every event two actions are fired by the host: "entered <to>" and
// "<from> to <to>". Only those present in the enabled list produce a
// notification, in event order, entered action first.
//
// Example:
//
//	dispatcher := NewNotificationDispatcher()
//	enabled := notification.DefaultActions().Without(notification.StatusEntered("not-picked-up"))
//	triggered := dispatcher.Dispatch(o.PullEvents(), enabled)
type NotificationDispatcher struct{}

// NewNotificationDispatcher creates the dispatcher. It holds no state.
func NewNotificationDispatcher() NotificationDispatcher {
	return NotificationDispatcher{}
}

func (NotificationDispatcher) Dispatch(
	events []order.StatusChanged,
	enabled notification.Actions,
) []TriggeredNotification {
	triggered := make([]TriggeredNotification, 0, len(events))
	for _, ev := range events {
		for _, action := range []notification.Action{
			notification.StatusEntered(ev.To.Slug()),
			notification.StatusTransition(ev.From.Slug(), ev.To.Slug()),
		} {
			if enabled.Contains(action) {
				triggered = append(triggered, TriggeredNotification{
					OrderID: ev.OrderID,
					EventID: ev.ID,
					Action:  action,
				})
			}
		}
	}
	return triggered
}
