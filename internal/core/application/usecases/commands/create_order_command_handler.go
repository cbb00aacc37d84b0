package commands

import (
	"context"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/order"
)

// OrderCreatedListener is told about every order once its creation is committed.
type OrderCreatedListener interface {
	OrderCreated(ctx context.Context, id kernel.OrderID)
}

// CreateOrderCommandHandler persists new orders.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	listeners  []OrderCreatedListener
}

// NewCreateOrderCommandHandler creates the handler. Listeners run after commit.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, listeners ...OrderCreatedListener) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		listeners:  listeners,
	}
}

// Handle creates the order in its initial status inside one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.InitialStatus())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, l := range h.listeners {
		l.OrderCreated(ctx, o.ID())
	}
	return nil
}
