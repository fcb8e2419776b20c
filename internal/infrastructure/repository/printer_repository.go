package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/comandero/pos-api/internal/domain/entity"
	domainRepo "github.com/comandero/pos-api/internal/domain/repository"
)

type printerTargetRepository struct {
	db *gorm.DB
}

// NewPrinterTargetRepository creates a new printer target repository
func NewPrinterTargetRepository(db *gorm.DB) domainRepo.PrinterTargetRepository {
	return &printerTargetRepository{db: db}
}

func (r *printerTargetRepository) Create(ctx context.Context, target *entity.PrinterTarget) error {
	return dbFrom(ctx, r.db).Create(target).Error
}

func (r *printerTargetRepository) GetByID(ctx context.Context, id uint) (*entity.PrinterTarget, error) {
	var target entity.PrinterTarget
	err := dbFrom(ctx, r.db).First(&target, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &target, err
}

func (r *printerTargetRepository) Update(ctx context.Context, target *entity.PrinterTarget) error {
	return dbFrom(ctx, r.db).Save(target).Error
}

func (r *printerTargetRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.PrinterTarget{}, "id = ?", id).Error
}

func (r *printerTargetRepository) List(ctx context.Context) ([]entity.PrinterTarget, error) {
	var targets []entity.PrinterTarget
	err := dbFrom(ctx, r.db).Order("id ASC").Find(&targets).Error
	return targets, err
}

func (r *printerTargetRepository) ListActive(ctx context.Context) ([]entity.PrinterTarget, error) {
	var targets []entity.PrinterTarget
	err := dbFrom(ctx, r.db).Where("active = ?", true).Order("id ASC").Find(&targets).Error
	return targets, err
}
