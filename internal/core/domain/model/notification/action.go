// Package notification names the host events that trigger customer emails.
//
// The host fires StatusEntered(to) and StatusTransition(from, to) whenever an
// order changes status; only actions present in the (filtered) enabled list
// result in an email.
package notification

import (
	"fmt"

	"notpickedup/internal/core/domain/model/status"
)

const actionPrefix = "order_status_"

// Action identifies one notification-triggering event.
type Action string

// StatusEntered names the event fired when an order enters slug.
func StatusEntered(slug status.Slug) Action {
	return Action(actionPrefix + string(slug))
}

// StatusTransition names the event fired when an order moves from one status to another.
func StatusTransition(from, to status.Slug) Action {
	return Action(fmt.Sprintf("%s%s_to_%s", actionPrefix, from, to))
}

// Actions is an ordered list of action identifiers. Duplicates are allowed.
type Actions []Action

// DefaultActions is the host's list of email-triggering actions before filtering.
func DefaultActions() Actions {
	return Actions{
		StatusTransition("pending", "processing"),
		StatusTransition("pending", "completed"),
		StatusTransition("processing", "cancelled"),
		StatusTransition("pending", "failed"),
		StatusTransition("pending", "on-hold"),
		StatusTransition("failed", "processing"),
		StatusTransition("failed", "completed"),
		StatusTransition("failed", "on-hold"),
		StatusTransition("cancelled", "processing"),
		StatusTransition("cancelled", "completed"),
		StatusTransition("cancelled", "on-hold"),
		StatusTransition("on-hold", "processing"),
		StatusTransition("on-hold", "cancelled"),
		StatusTransition("on-hold", "failed"),
		StatusEntered("completed"),
		"order_fully_refunded",
		"order_partially_refunded",
		"new_customer_note",
	}
}

// Contains reports whether action is in the list.
func (a Actions) Contains(action Action) bool {
	for _, x := range a {
		if x == action {
			return true
		}
	}
	return false
}

// Without returns a new list without any occurrence of remove. Order and
// multiplicity of the remaining entries are preserved.
func (a Actions) Without(remove ...Action) Actions {
	drop := make(map[Action]struct{}, len(remove))
	for _, r := range remove {
		drop[r] = struct{}{}
	}

	out := make(Actions, 0, len(a))
	for _, x := range a {
		if _, ok := drop[x]; !ok {
			out = append(out, x)
		}
	}
	return out
}
