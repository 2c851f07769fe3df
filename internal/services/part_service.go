package services

import (
	"context"
	"strings"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/caching"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

const defaultPartUnit = "each"

type PartService interface {
	Create(ctx context.Context, part *models.Part) error
	GetByID(ctx context.Context, id int64) (*models.Part, error)
	GetBySKU(ctx context.Context, sku string) (*models.Part, error)
	Update(ctx context.Context, part *models.Part) error
	Archive(ctx context.Context, id int64) (*models.Part, error)
	Restore(ctx context.Context, id int64) (*models.Part, error)
	Search(ctx context.Context, filter *models.PartSearchFilter) ([]*models.Part, error)
}

type partService struct {
	repos        *repositories.Repositories
	transactor   repositories.Transactor
	stockService StockService
	alertService AlertService
	cacheService caching.CacheService
}

func NewPartService(repos *repositories.Repositories, transactor repositories.Transactor, stockService StockService, alertService AlertService, cacheService caching.CacheService) PartService {
	return &partService{
		repos:        repos,
		transactor:   transactor,
		stockService: stockService,
		alertService: alertService,
		cacheService: cacheService,
	}
}

func validatePart(part *models.Part) error {
	part.SKU = strings.TrimSpace(part.SKU)
	part.Name = strings.TrimSpace(part.Name)
	if part.SKU == "" {
		return common.NewValidationError("sku", "is required")
	}
	if part.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if part.UnitPrice.IsNegative() {
		return common.NewValidationError("unit_price", "must not be negative")
	}
	if part.MinStockThreshold < 0 {
		return common.NewValidationError("min_stock_threshold", "must not be negative")
	}
	if err := common.CheckQuantity(part.MinStockThreshold, "min_stock_threshold"); err != nil {
		return err
	}
	if strings.TrimSpace(part.Unit) == "" {
		part.Unit = defaultPartUnit
	}
	unitPrice, err := common.CheckMoney(common.RoundMoney(part.UnitPrice), "unit_price")
	if err != nil {
		return err
	}
	part.UnitPrice = unitPrice
	return nil
}

// checkReferences makes sure the optional category, supplier and line code exist
func checkReferences(ctx context.Context, repos *repositories.Repositories, part *models.Part) error {
	if part.CategoryID != nil {
		if _, err := repos.Categories.GetByID(ctx, *part.CategoryID); err != nil {
			return err
		}
	}
	if part.SupplierID != nil {
		if _, err := repos.Suppliers.GetByID(ctx, *part.SupplierID); err != nil {
			return err
		}
	}
	if part.LineCodeID != nil {
		if _, err := repos.LineCodes.GetByID(ctx, *part.LineCodeID); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the part with zero stock and books any initial quantity through the
// ledger so the history replays to the opening balance
func (s *partService) Create(ctx context.Context, part *models.Part) error {
	if err := validatePart(part); err != nil {
		return err
	}
	if part.StockQuantity < 0 {
		return common.NewValidationError("stock_quantity", "must not be negative")
	}
	if err := common.CheckQuantity(part.StockQuantity, "stock_quantity"); err != nil {
		return err
	}

	initial := part.StockQuantity
	var movements []*models.StockMovement
	err := s.transactor.WithinTx(ctx, func(repos *repositories.Repositories) error {
		if err := checkReferences(ctx, repos, part); err != nil {
			return err
		}

		part.StockQuantity = 0
		part.IsArchived = false
		if err := repos.Parts.Create(ctx, part); err != nil {
			return err
		}

		if initial > 0 {
			movement, err := s.stockService.Apply(ctx, repos, models.StockMutation{
				PartID:          part.ID,
				Mode:            models.StockDelta,
				Quantity:        initial,
				TransactionType: models.TransactionIn,
				Reference:       models.Reference{Type: models.ReferenceInitial},
				OperatedBy:      common.OperatorFromContext(ctx),
			})
			if err != nil {
				return err
			}
			part.StockQuantity = movement.NewBalance
			movements = append(movements, movement)
		}
		return nil
	})
	if err != nil {
		part.StockQuantity = initial
		return err
	}

	s.stockService.Published(ctx, movements)
	return nil
}

func (s *partService) GetByID(ctx context.Context, id int64) (*models.Part, error) {
	// Try to get from cache first
	if cachedPart, err := s.cacheService.GetPart(ctx, id); cachedPart != nil {
		return cachedPart, nil
	} else if err != nil {
		logger.Warn(ctx).Err(err).Int64("part_id", id).Msg("part cache error")
	}

	part, err := s.repos.Parts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetPart(ctx, part); cacheErr != nil {
		logger.Warn(ctx).Err(cacheErr).Int64("part_id", id).Msg("failed to cache part")
	}
	return part, nil
}

func (s *partService) GetBySKU(ctx context.Context, sku string) (*models.Part, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, common.NewValidationError("sku", "is required")
	}
	return s.repos.Parts.GetBySKU(ctx, sku)
}

// Update changes every field except stock_quantity, which only moves through the ledger
func (s *partService) Update(ctx context.Context, part *models.Part) error {
	if err := validatePart(part); err != nil {
		return err
	}

	existing, err := s.repos.Parts.GetByID(ctx, part.ID)
	if err != nil {
		return err
	}
	if err := checkReferences(ctx, s.repos, part); err != nil {
		return err
	}

	part.StockQuantity = existing.StockQuantity
	part.IsArchived = existing.IsArchived
	part.CreatedAt = existing.CreatedAt
	if err := s.repos.Parts.Update(ctx, part); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeletePart(ctx, part.ID); cacheErr != nil {
		logger.Warn(ctx).Err(cacheErr).Int64("part_id", part.ID).Msg("failed to invalidate part cache")
	}
	// Sales history is cached per SKU
	if part.SKU != existing.SKU {
		if cacheErr := s.cacheService.InvalidateSalesHistory(ctx); cacheErr != nil {
			logger.Warn(ctx).Err(cacheErr).Int64("part_id", part.ID).Msg("failed to invalidate sales history cache")
		}
	}

	// A raised threshold can put the part under its minimum without any stock movement
	if part.IsLowStock() && part.MinStockThreshold != existing.MinStockThreshold {
		alert, created, err := s.alertService.Raise(ctx, s.repos, part)
		if err != nil {
			logger.Warn(ctx).Err(err).Int64("part_id", part.ID).Msg("failed to raise low stock alert")
		} else {
			s.alertService.Published(ctx, alert, created)
		}
	}
	return nil
}

func (s *partService) Archive(ctx context.Context, id int64) (*models.Part, error) {
	return s.setArchived(ctx, id, true)
}

func (s *partService) Restore(ctx context.Context, id int64) (*models.Part, error) {
	return s.setArchived(ctx, id, false)
}

func (s *partService) setArchived(ctx context.Context, id int64, archived bool) (*models.Part, error) {
	if err := s.repos.Parts.SetArchived(ctx, id, archived); err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.DeletePart(ctx, id); cacheErr != nil {
		logger.Warn(ctx).Err(cacheErr).Int64("part_id", id).Msg("failed to invalidate part cache")
	}
	return s.repos.Parts.GetByID(ctx, id)
}

func (s *partService) Search(ctx context.Context, filter *models.PartSearchFilter) ([]*models.Part, error) {
	if filter == nil {
		filter = &models.PartSearchFilter{}
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	return s.repos.Parts.Search(ctx, filter)
}
