package repository

import (
	"context"

	"github.com/comandero/pos-api/internal/domain/entity"
)

// PrinterTargetRepository defines the interface for printer target data operations
type PrinterTargetRepository interface {
	Create(ctx context.Context, target *entity.PrinterTarget) error
	GetByID(ctx context.Context, id uint) (*entity.PrinterTarget, error)
	Update(ctx context.Context, target *entity.PrinterTarget) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]entity.PrinterTarget, error)
	ListActive(ctx context.Context) ([]entity.PrinterTarget, error)
}
