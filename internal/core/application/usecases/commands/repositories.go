// Package commands contains operations that change order state.
// Every command follows the same pattern: constructor validation, a unit of
// work per aggregate change, and persistence through the order repository.
package commands

import (
	"context"

	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		// Begin starts a new database transaction.
		Begin(ctx context.Context) error
		// Commit commits the current transaction.
		Commit(ctx context.Context) error
		// Rollback rolls back the current transaction.
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		// OrderRepository returns the repository bound to the transaction.
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StatusListProvider returns the host's current, filtered status list.
	StatusListProvider interface {
		Statuses(ctx context.Context) (status.List, error)
	}
)

// StatusListFunc adapts a function to StatusListProvider.
type StatusListFunc func(ctx context.Context) (status.List, error)

// Statuses calls f.
func (f StatusListFunc) Statuses(ctx context.Context) (status.List, error) {
	return f(ctx)
}
