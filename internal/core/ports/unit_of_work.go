package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh unit of work per use case call.
type UnitOfWorkFactory interface {
	// Create returns a new unit of work with no open transaction.
	Create() UnitOfWork
}

// UnitOfWork scopes repository calls to one transaction. Commit publishes the
// status-change events of every aggregate the repositories touched.
type UnitOfWork interface {
	// Begin starts a new database transaction. Calling it again is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the transaction and then publishes collected events.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction and drops collected events.
	Rollback(ctx context.Context) error

	// OrderRepository returns the repository bound to this unit of work.
	OrderRepository() OrderRepository
}
