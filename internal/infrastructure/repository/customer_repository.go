package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/comandero/pos-api/internal/domain/entity"
	domainRepo "github.com/comandero/pos-api/internal/domain/repository"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFrom(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) SearchByPhone(ctx context.Context, phone string) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := dbFrom(ctx, r.db).
		Where("phone ILIKE ?", "%"+phone+"%").
		Order("name ASC").
		Limit(20).
		Find(&customers).Error
	return customers, err
}

type courierRepository struct {
	db *gorm.DB
}

// NewCourierRepository creates a new courier repository
func NewCourierRepository(db *gorm.DB) domainRepo.CourierRepository {
	return &courierRepository{db: db}
}

func (r *courierRepository) GetByID(ctx context.Context, id uint) (*entity.Courier, error) {
	var courier entity.Courier
	err := dbFrom(ctx, r.db).First(&courier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &courier, err
}

func (r *courierRepository) ListActive(ctx context.Context) ([]entity.Courier, error) {
	var couriers []entity.Courier
	err := dbFrom(ctx, r.db).Where("active = ?", true).Order("name ASC").Find(&couriers).Error
	return couriers, err
}
