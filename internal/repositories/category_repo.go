package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.PartCategory) error
	GetByID(ctx context.Context, id int64) (*models.PartCategory, error)
	Update(ctx context.Context, category *models.PartCategory) error
	List(ctx context.Context, limit, offset int) ([]*models.PartCategory, error)
}

type categoryRepo struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.PartCategory) error {
	query := `
		INSERT INTO part_categories (name, description, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, category.Name, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	return mapError(err, "category", category.Name)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.PartCategory, error) {
	category := &models.PartCategory{}
	query := `SELECT id, name, description, created_at, updated_at FROM part_categories WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "category", id)
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.PartCategory) error {
	query := `UPDATE part_categories SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, category.Name, category.Description, category.ID)
	if err != nil {
		return mapError(err, "category", category.ID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "category", category.ID)
	}
	return nil
}

func (r *categoryRepo) List(ctx context.Context, limit, offset int) ([]*models.PartCategory, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM part_categories
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.PartCategory{}
	for rows.Next() {
		category := &models.PartCategory{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
