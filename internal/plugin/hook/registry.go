// Package hook is the host's extension-point registry: named filters that
// transform a payload and named actions that react to an event.
package hook

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Extension points exposed by the host order runtime.
const (
	Init                    = "init"
	FilterOrderStatuses     = "order_statuses"
	FilterEmailActions      = "email_actions"
	FilterBulkActions       = "bulk_actions.orders"
	FilterHandleBulkActions = "handle_bulk_actions.orders"
	ActionAdminNotices      = "admin_notices"
)

// FilterFunc transforms payload and returns the value passed to the next filter.
type FilterFunc func(ctx context.Context, payload any) (any, error)

// ActionFunc reacts to an event payload.
type ActionFunc func(ctx context.Context, payload any) error

// Registry holds callbacks per hook name and runs them in registration order.
type Registry struct {
	mu      sync.RWMutex
	filters map[string][]FilterFunc
	actions map[string][]ActionFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		filters: make(map[string][]FilterFunc),
		actions: make(map[string][]ActionFunc),
	}
}

// AddFilter binds fn to name. Empty names and nil callbacks are ignored.
func (r *Registry) AddFilter(name string, fn FilterFunc) {
	key := normalizeName(name)
	if r == nil || fn == nil || key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[key] = append(r.filters[key], fn)
}

// AddAction binds fn to name. Empty names and nil callbacks are ignored.
func (r *Registry) AddAction(name string, fn ActionFunc) {
	key := normalizeName(name)
	if r == nil || fn == nil || key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[key] = append(r.actions[key], fn)
}

// ApplyFilters threads payload through every filter bound to name and stops at
// the first error. With no filters the payload is returned unchanged.
func (r *Registry) ApplyFilters(ctx context.Context, name string, payload any) (any, error) {
	if r == nil {
		return payload, nil
	}

	r.mu.RLock()
	filters := append([]FilterFunc(nil), r.filters[normalizeName(name)]...)
	r.mu.RUnlock()

	current := payload
	for _, filter := range filters {
		next, err := filter(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", name, err)
		}
		current = next
	}
	return current, nil
}

// DoAction runs every action bound to name and stops at the first error.
func (r *Registry) DoAction(ctx context.Context, name string, payload any) error {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	actions := append([]ActionFunc(nil), r.actions[normalizeName(name)]...)
	r.mu.RUnlock()

	for _, action := range actions {
		if err := action(ctx, payload); err != nil {
			return fmt.Errorf("action %s: %w", name, err)
		}
	}
	return nil
}

// Has reports whether any filter or action is bound to name.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	key := normalizeName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters[key]) > 0 || len(r.actions[key]) > 0
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
