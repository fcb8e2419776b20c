package repository

import (
	"context"

	"github.com/comandero/pos-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)
	ListActive(ctx context.Context) ([]entity.Product, error)
}

// PaymentMethodRepository defines the interface for payment method lookups
type PaymentMethodRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.PaymentMethod, error)
	List(ctx context.Context) ([]entity.PaymentMethod, error)
}
