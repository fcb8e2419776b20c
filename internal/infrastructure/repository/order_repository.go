package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	domainRepo "github.com/comandero/pos-api/internal/domain/repository"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return dbFrom(ctx, r.db).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := dbFrom(ctx, r.db).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := dbFrom(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_items.id ASC") }).
		Preload("Items.Product").
		Preload("Customer").
		Preload("Courier").
		Preload("PaymentMethod").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return dbFrom(ctx, r.db).Save(order).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Order{})

	if params.Channel != nil {
		query = query.Where("channel = ?", *params.Channel)
	}
	if params.Fulfillment != nil {
		query = query.Where("fulfillment_status = ?", *params.Fulfillment)
	}
	if params.Paid != nil {
		if *params.Paid {
			query = query.Where("payment_method_id IS NOT NULL")
		} else {
			query = query.Where("payment_method_id IS NULL")
		}
	}
	if params.StartDate != nil {
		query = query.Where("occurred_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("occurred_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Preload("Customer").
		Preload("Courier").
		Order("occurred_at DESC, id DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) ListByStatus(ctx context.Context, channel enum.Channel, status enum.FulfillmentStatus) ([]entity.Order, error) {
	var orders []entity.Order
	err := dbFrom(ctx, r.db).
		Where("channel = ? AND fulfillment_status = ? AND total > 0", channel, status).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		Preload("Courier").
		Order("occurred_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListPaid(ctx context.Context, channel enum.Channel) ([]entity.Order, error) {
	var orders []entity.Order
	err := dbFrom(ctx, r.db).
		Where("channel = ? AND payment_method_id IS NOT NULL", channel).
		Preload("PaymentMethod").
		Order("occurred_at DESC").
		Find(&orders).Error
	return orders, err
}

type lineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository creates a new line item repository
func NewLineItemRepository(db *gorm.DB) domainRepo.LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) Create(ctx context.Context, item *entity.LineItem) error {
	return dbFrom(ctx, r.db).Create(item).Error
}

func (r *lineItemRepository) CreateBatch(ctx context.Context, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *lineItemRepository) GetByID(ctx context.Context, id uint) (*entity.LineItem, error) {
	var item entity.LineItem
	err := dbFrom(ctx, r.db).Preload("Product").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *lineItemRepository) GetByOrderID(ctx context.Context, orderID uint) ([]entity.LineItem, error) {
	var items []entity.LineItem
	err := dbFrom(ctx, r.db).
		Where("order_id = ?", orderID).
		Preload("Product").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// FindPlain returns the modifier-free line for a product within an order,
// which is the only line quantity increments may merge into.
func (r *lineItemRepository) FindPlain(ctx context.Context, orderID, productID uint) (*entity.LineItem, error) {
	var item entity.LineItem
	err := dbFrom(ctx, r.db).
		Where("order_id = ? AND product_id = ? AND (modifiers IS NULL OR modifiers = 'null' OR modifiers = '[]')", orderID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *lineItemRepository) Update(ctx context.Context, item *entity.LineItem) error {
	return dbFrom(ctx, r.db).Save(item).Error
}

func (r *lineItemRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.LineItem{}, "id = ?", id).Error
}

func (r *lineItemRepository) DeleteByOrderID(ctx context.Context, orderID uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.LineItem{}, "order_id = ?", orderID).Error
}
