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

type SalesHistoryService interface {
	BySKU(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error)
}

type salesHistoryService struct {
	documentRepo repositories.DocumentRepository
	cacheService caching.CacheService
}

func NewSalesHistoryService(documentRepo repositories.DocumentRepository, cacheService caching.CacheService) SalesHistoryService {
	return &salesHistoryService{documentRepo: documentRepo, cacheService: cacheService}
}

// BySKU lists sales-invoice lines for the SKU, newest first. Unknown SKUs give an empty list.
func (s *salesHistoryService) BySKU(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, common.NewValidationError("sku", "is required")
	}

	if cached, err := s.cacheService.GetSalesHistory(ctx, sku); cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Warn(ctx).Err(err).Str("sku", sku).Msg("sales history cache error")
	}

	history, err := s.documentRepo.SalesHistoryBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.SalesHistoryRecord{}
	}

	if cacheErr := s.cacheService.SetSalesHistory(ctx, sku, history); cacheErr != nil {
		logger.Warn(ctx).Err(cacheErr).Str("sku", sku).Msg("failed to cache sales history")
	}
	return history, nil
}
