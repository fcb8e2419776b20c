package service

import (
	"context"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/repository"
)

// CatalogService serves the read-mostly lookups the POS screens need.
type CatalogService struct {
	productRepo repository.ProductRepository
	courierRepo repository.CourierRepository
	paymentRepo repository.PaymentMethodRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	courierRepo repository.CourierRepository,
	paymentRepo repository.PaymentMethodRepository,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		courierRepo: courierRepo,
		paymentRepo: paymentRepo,
	}
}

// Products returns the sellable products.
func (s *CatalogService) Products(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListActive(ctx)
}

// Couriers returns the couriers available for delivery assignment.
func (s *CatalogService) Couriers(ctx context.Context) ([]entity.Courier, error) {
	return s.courierRepo.ListActive(ctx)
}

// PaymentMethods returns the configured payment methods.
func (s *CatalogService) PaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	return s.paymentRepo.List(ctx)
}
