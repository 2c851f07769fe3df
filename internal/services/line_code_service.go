package services

import (
	"context"
	"strings"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
)

type LineCodeService interface {
	Create(ctx context.Context, lineCode *models.LineCode) error
	GetByID(ctx context.Context, id int64) (*models.LineCode, error)
	Update(ctx context.Context, lineCode *models.LineCode) error
	List(ctx context.Context, limit, offset int) ([]*models.LineCode, error)
}

type lineCodeService struct {
	lineCodeRepo repositories.LineCodeRepository
}

func NewLineCodeService(lineCodeRepo repositories.LineCodeRepository) LineCodeService {
	return &lineCodeService{lineCodeRepo: lineCodeRepo}
}

// Codes are stored upper case
func validateLineCode(lineCode *models.LineCode) error {
	lineCode.Code = strings.ToUpper(strings.TrimSpace(lineCode.Code))
	lineCode.Name = strings.TrimSpace(lineCode.Name)
	if lineCode.Code == "" {
		return common.NewValidationError("code", "is required")
	}
	if lineCode.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	return nil
}

func (s *lineCodeService) Create(ctx context.Context, lineCode *models.LineCode) error {
	if err := validateLineCode(lineCode); err != nil {
		return err
	}
	return s.lineCodeRepo.Create(ctx, lineCode)
}

func (s *lineCodeService) GetByID(ctx context.Context, id int64) (*models.LineCode, error) {
	return s.lineCodeRepo.GetByID(ctx, id)
}

func (s *lineCodeService) Update(ctx context.Context, lineCode *models.LineCode) error {
	if err := validateLineCode(lineCode); err != nil {
		return err
	}
	return s.lineCodeRepo.Update(ctx, lineCode)
}

func (s *lineCodeService) List(ctx context.Context, limit, offset int) ([]*models.LineCode, error) {
	return s.lineCodeRepo.List(ctx, limit, offset)
}
