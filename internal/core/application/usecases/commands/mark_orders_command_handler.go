package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/errs"
)

// MarkOrdersResult reports what happened to each selected order.
type MarkOrdersResult struct {
	// Requested is the size of the selection, duplicates included.
	Requested int
	Applied   []kernel.OrderID
	// Skipped holds ids that did not resolve to a live order, including ids
	// that can never refer to one.
	Skipped []kernel.OrderID
}

// MarkOrdersCommandHandler runs the host's per-order status update for every
// selected order. Each order is updated in its own transaction; the host order
// model decides what the transition means. Orders that cannot be found are
// skipped without error.
type MarkOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	statuses   StatusListProvider
	logger     *slog.Logger
}

// NewMarkOrdersCommandHandler creates the handler.
func NewMarkOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	statuses StatusListProvider,
	logger *slog.Logger,
) MarkOrdersCommandHandler {
	return MarkOrdersCommandHandler{
		uowFactory: uowFactory,
		statuses:   statuses,
		logger:     logger.With("component", "mark_orders_handler"),
	}
}

// Handle stops at the first error other than "order not found" and returns the
// partial result gathered so far.
func (h MarkOrdersCommandHandler) Handle(ctx context.Context, cmd MarkOrdersCommand) (MarkOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkOrdersResult{}, err
	}

	known, err := h.statuses.Statuses(ctx)
	if err != nil {
		return MarkOrdersResult{}, err
	}

	ids := cmd.OrderIDs()
	result := MarkOrdersResult{Requested: len(ids)}
	for _, id := range ids {
		if id.Validate() != nil {
			h.logger.DebugContext(ctx, "Order reference does not resolve, skipping", "order_id", id.String())
			result.Skipped = append(result.Skipped, id)
			continue
		}

		applied, markErr := h.markOne(ctx, id, cmd, known)
		if markErr != nil {
			return result, fmt.Errorf("failed to mark order %s: %w", id, markErr)
		}
		if applied {
			result.Applied = append(result.Applied, id)
			continue
		}
		h.logger.DebugContext(ctx, "Order not found, skipping", "order_id", id.String())
		result.Skipped = append(result.Skipped, id)
	}

	return result, nil
}

func (h MarkOrdersCommandHandler) markOne(
	ctx context.Context,
	id kernel.OrderID,
	cmd MarkOrdersCommand,
	known status.List,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = o.UpdateStatus(cmd.Target(), cmd.Note(), known); err != nil {
		return false, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
