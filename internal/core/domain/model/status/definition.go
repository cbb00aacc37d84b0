package status

import (
	"errors"
	"fmt"
	"strings"

	"notpickedup/internal/pkg/errs"
	"notpickedup/internal/pkg/guard"
)

var ErrDefinitionIsNotConstructed = errors.New("Definition must be created via NewDefinition constructor")

// LabelCount holds the singular and plural admin count labels, each with one %d verb.
type LabelCount struct {
	Singular string
	Plural   string
}

// Format renders the count label, e.g. "Not Picked Up (3)".
func (lc LabelCount) Format(n int) string {
	format := lc.Plural
	if n == 1 {
		format = lc.Singular
	}
	return fmt.Sprintf(format, n)
}

func (lc LabelCount) validate() error {
	for _, format := range []string{lc.Singular, lc.Plural} {
		if strings.Count(format, "%d") != 1 {
			return errs.NewValueIsInvalidErrorWithCause(
				"label count",
				fmt.Errorf("%q must contain exactly one %%d", format),
			)
		}
	}
	return nil
}

// Visibility mirrors the host's per-status visibility flags. The admin status
// links honor ShowInAdminStatusList; the other flags are kept for the host.
type Visibility struct {
	Public                bool
	ExcludeFromSearch     bool
	ShowInAdminAllList    bool
	ShowInAdminStatusList bool
}

// Definition is what gets registered with the host status registry.
type Definition struct { //nolint:recvcheck // setters are used during construction only
	key        Key
	label      string
	visibility Visibility
	labelCount LabelCount

	guard guard.ConstructorGuard
}

// NewDefinition validates and builds a status definition.
func NewDefinition(key Key, label string, visibility Visibility, labelCount LabelCount) (Definition, error) {
	def := Definition{
		visibility: visibility,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		def.setKey(key),
		def.setLabel(label),
		def.setLabelCount(labelCount),
	); err != nil {
		return Definition{}, err
	}

	return def, nil
}

// Validate ensures the definition was created through NewDefinition.
func (d Definition) Validate() error {
	return d.guard.Validate(ErrDefinitionIsNotConstructed)
}

// Key returns the status key.
func (d Definition) Key() Key {
	return d.key
}

// Label returns the display label.
func (d Definition) Label() string {
	return d.label
}

// Visibility returns the visibility flags.
func (d Definition) Visibility() Visibility {
	return d.visibility
}

// LabelCount returns the admin count labels.
func (d Definition) LabelCount() LabelCount {
	return d.labelCount
}

func (d *Definition) setKey(key Key) error {
	if err := key.Validate(); err != nil {
		return err
	}
	d.key = key
	return nil
}

func (d *Definition) setLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errs.NewValueIsRequiredError("status label")
	}
	d.label = label
	return nil
}

func (d *Definition) setLabelCount(lc LabelCount) error {
	if err := lc.validate(); err != nil {
		return err
	}
	d.labelCount = lc
	return nil
}
