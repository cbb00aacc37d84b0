package status

import (
	"fmt"
	"strings"

	"notpickedup/internal/pkg/errs"
)

// KeyPrefix is prepended by the host to every status slug.
const KeyPrefix = "wc-"

// Key is a prefixed status token such as "wc-on-hold".
type Key string

// Slug is the unprefixed status token such as "on-hold".
type Slug string

// Built-in host statuses, in the host's canonical order.
const (
	Pending    Key = "wc-pending"
	Processing Key = "wc-processing"
	OnHold     Key = "wc-on-hold"
	Completed  Key = "wc-completed"
	Cancelled  Key = "wc-cancelled"
	Refunded   Key = "wc-refunded"
	Failed     Key = "wc-failed"
)

// KeyFromSlug adds the host prefix. Keys that already carry it are returned unchanged.
func KeyFromSlug(slug Slug) Key {
	s := string(slug)
	if strings.HasPrefix(s, KeyPrefix) {
		return Key(s)
	}
	return Key(KeyPrefix + s)
}

// ParseKey accepts either a prefixed key or a bare slug.
func ParseKey(raw string) (Key, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError("status key")
	}
	key := KeyFromSlug(Slug(trimmed))
	if err := key.Validate(); err != nil {
		return "", err
	}
	return key, nil
}

// Slug returns the key without the "wc-" prefix.
func (k Key) Slug() Slug {
	return Slug(strings.TrimPrefix(string(k), KeyPrefix))
}

func (k Key) String() string {
	return string(k)
}

// Validate checks the prefix and that the slug is a lowercase token of letters,
// digits, dashes and underscores.
func (k Key) Validate() error {
	s := string(k)
	if !strings.HasPrefix(s, KeyPrefix) || len(s) == len(KeyPrefix) {
		return errs.NewValueIsInvalidErrorWithCause("status key", fmt.Errorf("%q is not a %s token", s, KeyPrefix))
	}
	for _, r := range strings.TrimPrefix(s, KeyPrefix) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return errs.NewValueIsInvalidErrorWithCause("status key", fmt.Errorf("%q contains %q", s, r))
		}
	}
	return nil
}
