package repository

import (
	"context"
	"time"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uint) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uint) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListByStatus(ctx context.Context, channel enum.Channel, status enum.FulfillmentStatus) ([]entity.Order, error)
	ListPaid(ctx context.Context, channel enum.Channel) ([]entity.Order, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination  *pagination.PaginationParams
	Channel     *enum.Channel
	Fulfillment *enum.FulfillmentStatus
	Paid        *bool
	StartDate   *time.Time
	EndDate     *time.Time
}

// LineItemRepository defines the interface for line item data operations
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
	CreateBatch(ctx context.Context, items []entity.LineItem) error
	GetByID(ctx context.Context, id uint) (*entity.LineItem, error)
	GetByOrderID(ctx context.Context, orderID uint) ([]entity.LineItem, error)
	FindPlain(ctx context.Context, orderID, productID uint) (*entity.LineItem, error)
	Update(ctx context.Context, item *entity.LineItem) error
	Delete(ctx context.Context, id uint) error
	DeleteByOrderID(ctx context.Context, orderID uint) error
}
