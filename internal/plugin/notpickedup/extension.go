// Package notpickedup adds the "Not Picked Up" order status to the host runtime.
//
// The extension is a set of callbacks bound to host hooks by Install:
//
//   - init registers the status definition
//   - order_statuses places the status right after "On hold"
//   - email_actions turns off the customer emails for the status
//   - bulk_actions.orders offers "Change status to Not Picked Up"
//   - handle_bulk_actions.orders applies the status to the selected orders
//   - admin_notices confirms how many orders were marked
//
// None of the callbacks own state beyond what they receive; order storage,
// status transitions and notification delivery stay with the host.
package notpickedup

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"notpickedup/internal/core/application/usecases/commands"
	"notpickedup/internal/core/domain/model/bulkaction"
	"notpickedup/internal/core/domain/model/notification"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/intval"
	"notpickedup/internal/plugin/hook"
	"notpickedup/internal/plugin/host"
	"notpickedup/internal/support/i18n"
	"notpickedup/internal/support/metrics"

	"golang.org/x/text/message"
)

const (
	// StatusKey is the registered status key.
	StatusKey status.Key = "wc-not-picked-up"
	// Anchor is the status the new one is listed after.
	Anchor = status.OnHold
	// BulkAction is the bulk-action key contributed to the order list.
	BulkAction bulkaction.Key = "mark_not-picked-up"
	// NoticeQueryArg carries the marked count on the redirect back to the list.
	NoticeQueryArg = "marked_not_picked_up"
)

const noticeFormat = `<div class="notice notice-success is-dismissible"><p>%s</p></div>`

// SuppressedEmails are the customer email actions removed for the status.
var SuppressedEmails = []notification.Action{
	notification.StatusEntered(StatusKey.Slug()),
	notification.StatusTransition(StatusKey.Slug(), status.Processing.Slug()),
	notification.StatusTransition(StatusKey.Slug(), status.Completed.Slug()),
}

// OrderMarker applies a status to a selection of orders.
type OrderMarker interface {
	Handle(ctx context.Context, cmd commands.MarkOrdersCommand) (commands.MarkOrdersResult, error)
}

// Extension holds the callbacks and what they need from the host.
type Extension struct {
	statuses *status.Registry
	marker   OrderMarker
	printer  *message.Printer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates the extension. locale selects the language of labels, notes and
// notices; metrics may be nil.
func New(
	statuses *status.Registry,
	marker OrderMarker,
	catalog *i18n.Catalog,
	locale string,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Extension, error) {
	if statuses == nil {
		return nil, errors.New("status registry is required")
	}
	if marker == nil {
		return nil, errors.New("order marker is required")
	}
	if catalog == nil {
		return nil, errors.New("message catalog is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Extension{
		statuses: statuses,
		marker:   marker,
		printer:  catalog.Printer(locale),
		metrics:  m,
		logger:   logger.With("component", "not_picked_up"),
	}, nil
}

// Install binds every callback to its hook.
func (e *Extension) Install(hooks *hook.Registry) {
	hooks.AddAction(hook.Init, e.RegisterStatus)
	hooks.AddFilter(hook.FilterOrderStatuses, hook.TypedFilter(e.AddToOrderStatuses))
	hooks.AddFilter(hook.FilterEmailActions, hook.TypedFilter(e.RemoveEmailNotifications))
	hooks.AddFilter(hook.FilterBulkActions, hook.TypedFilter(e.AddBulkAction))
	hooks.AddFilter(hook.FilterHandleBulkActions, hook.TypedFilter(e.HandleBulkAction))
	hooks.AddAction(hook.ActionAdminNotices, hook.TypedAction(e.RenderNotice))
}

// Definition is the status as registered with the host.
func (e *Extension) Definition() (status.Definition, error) {
	countFormat := e.printer.Sprintf(i18n.StatusCountLabel)
	return status.NewDefinition(
		StatusKey,
		e.label(),
		status.Visibility{
			Public:                true,
			ExcludeFromSearch:     false,
			ShowInAdminAllList:    true,
			ShowInAdminStatusList: true,
		},
		status.LabelCount{Singular: countFormat, Plural: countFormat},
	)
}

// RegisterStatus registers the status definition. Running it again overwrites
// the previous registration.
func (e *Extension) RegisterStatus(_ context.Context, _ any) error {
	def, err := e.Definition()
	if err != nil {
		return err
	}
	return e.statuses.Register(def)
}

// AddToOrderStatuses inserts the status after the anchor. When the anchor is
// missing the list comes back without the new status.
func (e *Extension) AddToOrderStatuses(_ context.Context, statuses status.List) (status.List, error) {
	return statuses.InsertAfter(Anchor, StatusKey, e.label()), nil
}

// RemoveEmailNotifications drops the suppressed actions and keeps the rest as is.
func (e *Extension) RemoveEmailNotifications(_ context.Context, actions notification.Actions) (notification.Actions, error) {
	return actions.Without(SuppressedEmails...), nil
}

// AddBulkAction adds the bulk action to the menu, replacing an existing entry with the same key.
func (e *Extension) AddBulkAction(_ context.Context, menu bulkaction.Menu) (bulkaction.Menu, error) {
	return menu.Add(BulkAction, e.printer.Sprintf(i18n.BulkActionLabel)), nil
}

// HandleBulkAction marks the selected orders when the dispatched action is
// ours and adds the selection size to the redirect. Other actions pass through.
func (e *Extension) HandleBulkAction(ctx context.Context, d bulkaction.Dispatch) (bulkaction.Dispatch, error) {
	if d.Action != BulkAction {
		return d, nil
	}

	if len(d.OrderIDs) > 0 {
		cmd, err := commands.NewMarkOrdersCommand(d.OrderIDs, StatusKey, e.printer.Sprintf(i18n.OrderNote))
		if err != nil {
			e.countDispatch("invalid")
			return d, err
		}

		result, err := e.marker.Handle(ctx, cmd)
		e.countOrders(result)
		if err != nil {
			e.countDispatch("failed")
			e.logger.ErrorContext(ctx, "Bulk action failed",
				"requested", result.Requested,
				"applied", len(result.Applied),
				"error", err,
			)
			return d, err
		}

		e.logger.InfoContext(ctx, "Orders marked as not picked up",
			"requested", result.Requested,
			"applied", len(result.Applied),
			"skipped", len(result.Skipped),
		)
	}

	redirect, err := bulkaction.AddQueryArg(d.Redirect, NoticeQueryArg, len(d.OrderIDs))
	if err != nil {
		e.countDispatch("failed")
		return d, err
	}

	e.countDispatch("ok")
	d.Redirect = redirect
	return d, nil
}

// RenderNotice prints the success notice when the page was reached through
// the bulk-action redirect.
func (e *Extension) RenderNotice(_ context.Context, page host.AdminPage) error {
	values, ok := page.Query[NoticeQueryArg]
	if !ok || page.Out == nil {
		return nil
	}

	raw := ""
	if len(values) > 0 {
		raw = values[0]
	}
	count := int(intval.Parse(raw))

	text := e.printer.Sprintf(i18n.OrdersMarkedNotice, count)
	if _, err := fmt.Fprintf(page.Out, noticeFormat, html.EscapeString(text)); err != nil {
		return fmt.Errorf("failed to write notice: %w", err)
	}
	return nil
}

func (e *Extension) label() string {
	return e.printer.Sprintf(i18n.StatusLabel)
}

func (e *Extension) countDispatch(result string) {
	if e.metrics == nil {
		return
	}
	e.metrics.BulkDispatches.WithLabelValues(string(BulkAction), result).Inc()
}

func (e *Extension) countOrders(result commands.MarkOrdersResult) {
	if e.metrics == nil {
		return
	}
	e.metrics.OrdersMarked.Add(float64(len(result.Applied)))
	e.metrics.OrdersSkipped.Add(float64(len(result.Skipped)))
}
