package repository

import (
	"context"

	"github.com/comandero/pos-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	SearchByPhone(ctx context.Context, phone string) ([]entity.Customer, error)
}

// CourierRepository defines the interface for courier data operations
type CourierRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Courier, error)
	ListActive(ctx context.Context) ([]entity.Courier, error)
}
