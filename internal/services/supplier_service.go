package services

import (
	"context"
	"strings"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id int64) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	List(ctx context.Context, query string, limit, offset int) ([]*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func validateSupplier(supplier *models.Supplier) error {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	supplier.AccountsPayable = common.RoundMoney(supplier.AccountsPayable)
	return nil
}

func (s *supplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	return s.supplierRepo.Create(ctx, supplier)
}

func (s *supplierService) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

func (s *supplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	return s.supplierRepo.Update(ctx, supplier)
}

func (s *supplierService) List(ctx context.Context, query string, limit, offset int) ([]*models.Supplier, error) {
	return s.supplierRepo.List(ctx, common.SanitizeSearchQuery(query), limit, offset)
}
