package service

import (
	"context"
	"strings"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/pkg/apperror"
)

// CustomerService handles the delivery customer directory.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Get returns a customer by id.
func (s *CustomerService) Get(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// Create registers a new customer.
func (s *CustomerService) Create(ctx context.Context, customer *entity.Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return apperror.NewBadRequestError("customer name is required")
	}
	return s.customerRepo.Create(ctx, customer)
}

// Update stores changes to a customer.
func (s *CustomerService) Update(ctx context.Context, customer *entity.Customer) error {
	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Update(ctx, customer)
}

// SearchByPhone finds customers by partial phone match, for the delivery
// intake screen where the phone rings before anything else is known.
func (s *CustomerService) SearchByPhone(ctx context.Context, phone string) ([]entity.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, apperror.NewBadRequestError("phone is required")
	}
	return s.customerRepo.SearchByPhone(ctx, phone)
}
