package repository

import "context"

// TxManager runs a function inside a database transaction. Repositories
// invoked with the context passed to fn participate in the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
