// Package host runs the order runtime's extension points: it seeds each hook
// with the host's built-in payload and returns what the bound callbacks made of it.
package host

import (
	"context"
	"io"
	"net/url"

	"notpickedup/internal/core/domain/model/bulkaction"
	"notpickedup/internal/core/domain/model/notification"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/plugin/hook"
)

// AdminPage is the payload of the admin notices action: the query of the page
// being rendered and the writer notices are printed to.
type AdminPage struct {
	Query url.Values
	Out   io.Writer
}

// Host exposes the filtered host lists to adapters and use cases.
type Host struct {
	hooks *hook.Registry
}

// New creates a host over the given hook registry.
func New(hooks *hook.Registry) *Host {
	return &Host{hooks: hooks}
}

// Init fires the startup action once extensions are installed.
func (h *Host) Init(ctx context.Context) error {
	return h.hooks.DoAction(ctx, hook.Init, nil)
}

// Statuses returns the ordered status list after the order statuses filter.
func (h *Host) Statuses(ctx context.Context) (status.List, error) {
	return hook.Filter(ctx, h.hooks, hook.FilterOrderStatuses, status.DefaultList())
}

// EmailActions returns the customer email actions that remain enabled.
func (h *Host) EmailActions(ctx context.Context) (notification.Actions, error) {
	return hook.Filter(ctx, h.hooks, hook.FilterEmailActions, notification.DefaultActions())
}

// BulkActions returns the admin order list's bulk-action menu.
func (h *Host) BulkActions(ctx context.Context) (bulkaction.Menu, error) {
	return hook.Filter(ctx, h.hooks, hook.FilterBulkActions, bulkaction.DefaultMenu())
}

// HandleBulkAction passes a dispatched bulk action through the handlers and
// returns the redirect target they settled on. Unhandled actions come back unchanged.
func (h *Host) HandleBulkAction(ctx context.Context, d bulkaction.Dispatch) (string, error) {
	out, err := hook.Filter(ctx, h.hooks, hook.FilterHandleBulkActions, d)
	if err != nil {
		return "", err
	}
	return out.Redirect, nil
}

// RenderAdminNotices prints every notice contributed for the page to w.
func (h *Host) RenderAdminNotices(ctx context.Context, query url.Values, w io.Writer) error {
	if query == nil {
		query = url.Values{}
	}
	return h.hooks.DoAction(ctx, hook.ActionAdminNotices, AdminPage{Query: query, Out: w})
}
