package repository

import (
	"context"

	"github.com/comandero/pos-api/internal/domain/entity"
)

// CartStore holds staged carts keyed by session or order. A missing key
// yields (nil, nil) rather than an error.
type CartStore interface {
	Get(ctx context.Context, key string) (*entity.Cart, error)
	Put(ctx context.Context, key string, cart *entity.Cart) error
	Delete(ctx context.Context, key string) error

	// Pending removals are staged per order as a flat list of entries.
	GetRemovals(ctx context.Context, key string) ([]entity.CartEntry, error)
	PutRemovals(ctx context.Context, key string, entries []entity.CartEntry) error
	DeleteRemovals(ctx context.Context, key string) error
}
