package services

import (
	"context"
	"strings"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
)

type CategoryService interface {
	Create(ctx context.Context, category *models.PartCategory) error
	GetByID(ctx context.Context, id int64) (*models.PartCategory, error)
	Update(ctx context.Context, category *models.PartCategory) error
	List(ctx context.Context, limit, offset int) ([]*models.PartCategory, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, category *models.PartCategory) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	return s.categoryRepo.Create(ctx, category)
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*models.PartCategory, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) Update(ctx context.Context, category *models.PartCategory) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	return s.categoryRepo.Update(ctx, category)
}

func (s *categoryService) List(ctx context.Context, limit, offset int) ([]*models.PartCategory, error) {
	return s.categoryRepo.List(ctx, limit, offset)
}
