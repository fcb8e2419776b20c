package service

import (
	"context"
	"fmt"

	"github.com/comandero/pos-api/internal/domain/entity"
	"github.com/comandero/pos-api/internal/domain/enum"
	"github.com/comandero/pos-api/internal/domain/repository"
	"github.com/comandero/pos-api/pkg/apperror"
	"github.com/comandero/pos-api/pkg/receipt"
)

// PrinterAdminService manages the printer target inventory. Every mutation
// revalidates routing so that a (profile, kind) pair is never claimed by two
// active targets at once.
type PrinterAdminService struct {
	targetRepo repository.PrinterTargetRepository
	dispatcher *PrintService
}

// NewPrinterAdminService creates a new printer admin service.
func NewPrinterAdminService(targetRepo repository.PrinterTargetRepository, dispatcher *PrintService) *PrinterAdminService {
	return &PrinterAdminService{targetRepo: targetRepo, dispatcher: dispatcher}
}

// List returns all printer targets, active or not.
func (s *PrinterAdminService) List(ctx context.Context) ([]entity.PrinterTarget, error) {
	return s.targetRepo.List(ctx)
}

// Get returns a single printer target.
func (s *PrinterAdminService) Get(ctx context.Context, id uint) (*entity.PrinterTarget, error) {
	target, err := s.targetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NewNotFoundError("Printer target")
	}
	return target, nil
}

// Create validates and stores a new printer target, then rebuilds routing.
func (s *PrinterAdminService) Create(ctx context.Context, target *entity.PrinterTarget) error {
	if err := s.validate(ctx, target); err != nil {
		return err
	}
	if err := s.targetRepo.Create(ctx, target); err != nil {
		return err
	}
	return s.dispatcher.RebuildIndex(ctx)
}

// Update validates and stores changes to a printer target, then rebuilds routing.
func (s *PrinterAdminService) Update(ctx context.Context, target *entity.PrinterTarget) error {
	existing, err := s.targetRepo.GetByID(ctx, target.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Printer target")
	}
	if err := s.validate(ctx, target); err != nil {
		return err
	}
	if err := s.targetRepo.Update(ctx, target); err != nil {
		return err
	}
	return s.dispatcher.RebuildIndex(ctx)
}

// Delete removes a printer target and rebuilds routing.
func (s *PrinterAdminService) Delete(ctx context.Context, id uint) error {
	existing, err := s.targetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Printer target")
	}
	if err := s.targetRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.dispatcher.RebuildIndex(ctx)
}

// validate checks field sanity and rejects routes already claimed by another
// active target. Inactive targets may overlap freely.
func (s *PrinterAdminService) validate(ctx context.Context, target *entity.PrinterTarget) error {
	if target.Name == "" {
		return apperror.NewBadRequestError("printer name is required")
	}
	if len(target.DocumentKinds) == 0 || len(target.Profiles) == 0 {
		return apperror.NewBadRequestError("printer must route at least one profile and document kind")
	}
	for _, kind := range target.DocumentKinds {
		if !enum.DocumentKind(kind).Valid() {
			return apperror.NewBadRequestError(fmt.Sprintf("unknown document kind %q", kind))
		}
	}
	if target.Width <= 0 {
		target.Width = receipt.DefaultWidth
	}
	if target.RelayURL == nil && target.DriverName == "" {
		return apperror.NewBadRequestError("local printer requires a driver name")
	}

	if !target.Active {
		return nil
	}

	active, err := s.targetRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, other := range active {
		if other.ID == target.ID {
			continue
		}
		for _, profile := range target.Profiles {
			if !other.Profiles.Contains(profile) {
				continue
			}
			for _, kind := range target.DocumentKinds {
				if other.DocumentKinds.Contains(kind) {
					return apperror.NewConflictError(
						fmt.Sprintf("route %s/%s already handled by printer %q", profile, kind, other.Name))
				}
			}
		}
	}
	return nil
}
