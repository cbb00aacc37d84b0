// Package bulkaction models the admin order list's bulk-action menu and the
// payload handed to bulk-action handlers.
package bulkaction

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/pkg/errs"
)

// Key identifies a bulk action, e.g. "mark_not-picked-up".
type Key string

// Item is one selectable menu entry.
type Item struct {
	Key   Key    `json:"key"`
	Label string `json:"label"`
}

// Menu is the ordered bulk-action mapping. Adding an existing key replaces its
// label in place, so contributing the same action twice leaves one entry.
type Menu struct {
	items []Item
}

// DefaultMenu is the host's bulk-action menu for orders.
func DefaultMenu() Menu {
	return Menu{}.
		Add("mark_processing", "Change status to processing").
		Add("mark_on-hold", "Change status to on-hold").
		Add("mark_completed", "Change status to completed").
		Add("mark_cancelled", "Change status to cancelled").
		Add("trash", "Move to Trash")
}

// Add returns a copy of the menu with key mapped to label.
func (m Menu) Add(key Key, label string) Menu {
	items := m.Items()
	for i := range items {
		if items[i].Key == key {
			items[i].Label = label
			return Menu{items: items}
		}
	}
	return Menu{items: append(items, Item{Key: key, Label: label})}
}

// Items returns a copy of the menu entries in display order.
func (m Menu) Items() []Item {
	return append([]Item(nil), m.items...)
}

// Len returns the number of entries.
func (m Menu) Len() int {
	return len(m.items)
}

// Has reports whether the menu offers key.
func (m Menu) Has(key Key) bool {
	for _, it := range m.items {
		if it.Key == key {
			return true
		}
	}
	return false
}

// Dispatch is the payload of the bulk-action handler filter. Handlers return
// it with Redirect possibly rewritten.
type Dispatch struct {
	Action   Key
	Redirect string
	OrderIDs []kernel.OrderID
}

// AddQueryArg sets name=value on the redirect target. Other parameters keep
// their order and encoding; an existing name is replaced in place and its
// later repeats are dropped.
func AddQueryArg(redirect, name string, value int) (string, error) {
	u, err := url.Parse(redirect)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("redirect", fmt.Errorf("%q: %w", redirect, err))
	}

	arg := url.QueryEscape(name) + "=" + strconv.Itoa(value)
	pairs := make([]string, 0, strings.Count(u.RawQuery, "&")+2)
	replaced := false
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if unescaped, unescapeErr := url.QueryUnescape(key); unescapeErr == nil && unescaped == name {
			if !replaced {
				pairs = append(pairs, arg)
				replaced = true
			}
			continue
		}
		pairs = append(pairs, pair)
	}
	if !replaced {
		pairs = append(pairs, arg)
	}

	u.RawQuery = strings.Join(pairs, "&")
	u.ForceQuery = false
	return u.String(), nil
}
