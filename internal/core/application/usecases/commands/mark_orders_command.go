package commands

import (
	"errors"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/errs"
	"notpickedup/internal/pkg/guard"
)

var (
	ErrMarkOrdersCommandIsNotConstructed = errors.New(
		"MarkOrdersCommand must be created via NewMarkOrdersCommand constructor",
	)
)

// MarkOrdersCommand applies one target status to a selection of orders, the
// way an admin bulk action does.
//
// Example:
//
//	cmd, err := NewMarkOrdersCommand([]kernel.OrderID{101, 102}, "wc-not-picked-up", "Order marked as Not Picked Up")
//	result, err := handler.Handle(ctx, cmd)
type MarkOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.OrderID
	target   status.Key
	note     string

	guard guard.ConstructorGuard
}

// NewMarkOrdersCommand requires a non-empty selection and a valid target key.
// Duplicate ids are kept and each occurrence is applied. Ids that fail
// validation are kept too; they never resolve and are skipped by the handler.
func NewMarkOrdersCommand(orderIDs []kernel.OrderID, target status.Key, note string) (MarkOrdersCommand, error) {
	cmd := MarkOrdersCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setTarget(target),
	); err != nil {
		return MarkOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrdersCommandIsNotConstructed)
}

// OrderIDs returns a copy of the selection in submission order.
func (c MarkOrdersCommand) OrderIDs() []kernel.OrderID {
	return append([]kernel.OrderID(nil), c.orderIDs...)
}

// Target returns the status to apply.
func (c MarkOrdersCommand) Target() status.Key {
	return c.target
}

// Note returns the order note added with the change.
func (c MarkOrdersCommand) Note() string {
	return c.note
}

func (c *MarkOrdersCommand) setOrderIDs(ids []kernel.OrderID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}
	c.orderIDs = append([]kernel.OrderID(nil), ids...)
	return nil
}

func (c *MarkOrdersCommand) setTarget(target status.Key) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
