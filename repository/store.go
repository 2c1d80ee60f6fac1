package repository

import "context"

// Store hands out transaction-scoped repositories. It is the only storage
// handle the use cases hold.
type Store interface {
	// WithTx runs fn inside one storage transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise; it is always
	// released before WithTx returns.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}

// Tx groups the repositories bound to a single transaction.
type Tx interface {
	Users() UserRepository
	Todos() TodoRepository
	CompletedTasks() CompletedTaskRepository
}
