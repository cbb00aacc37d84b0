package commands

import (
	"errors"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand registers a new order with the host in an initial status.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(101, status.OnHold)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = NewCreateOrderCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	initial status.Key

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order id and the initial status key.
func NewCreateOrderCommand(orderID kernel.OrderID, initial status.Key) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setInitial(initial),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to create.
func (c CreateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// InitialStatus returns the status the order starts in.
func (c CreateOrderCommand) InitialStatus() status.Key {
	return c.initial
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setInitial(initial status.Key) error {
	if err := initial.Validate(); err != nil {
		return err
	}
	c.initial = initial
	return nil
}
