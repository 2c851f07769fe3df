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

type CustomerService interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	List(ctx context.Context, query string, limit, offset int) ([]*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	cacheService caching.CacheService
}

func NewCustomerService(customerRepo repositories.CustomerRepository, cacheService caching.CacheService) CustomerService {
	return &customerService{customerRepo: customerRepo, cacheService: cacheService}
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	customer.AccountsReceivable = common.RoundMoney(customer.AccountsReceivable)
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) Update(ctx context.Context, customer *models.Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	customer.AccountsReceivable = common.RoundMoney(customer.AccountsReceivable)

	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return err
	}

	// Sales history rows carry the customer name
	if existing.Name != customer.Name {
		if cacheErr := s.cacheService.InvalidateSalesHistory(ctx); cacheErr != nil {
			logger.Warn(ctx).Err(cacheErr).Int64("customer_id", customer.ID).Msg("failed to invalidate sales history cache")
		}
	}
	return nil
}

func (s *customerService) List(ctx context.Context, query string, limit, offset int) ([]*models.Customer, error) {
	return s.customerRepo.List(ctx, common.SanitizeSearchQuery(query), limit, offset)
}
