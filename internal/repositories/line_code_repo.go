package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type LineCodeRepository interface {
	Create(ctx context.Context, lineCode *models.LineCode) error
	GetByID(ctx context.Context, id int64) (*models.LineCode, error)
	Update(ctx context.Context, lineCode *models.LineCode) error
	List(ctx context.Context, limit, offset int) ([]*models.LineCode, error)
}

type lineCodeRepo struct {
	db DBTX
}

func NewLineCodeRepository(db DBTX) LineCodeRepository {
	return &lineCodeRepo{db: db}
}

func (r *lineCodeRepo) Create(ctx context.Context, lineCode *models.LineCode) error {
	query := `
		INSERT INTO line_codes (code, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, lineCode.Code, lineCode.Name, lineCode.Description).
		Scan(&lineCode.ID, &lineCode.CreatedAt, &lineCode.UpdatedAt)
	return mapError(err, "line code", lineCode.Code)
}

func (r *lineCodeRepo) GetByID(ctx context.Context, id int64) (*models.LineCode, error) {
	lineCode := &models.LineCode{}
	query := `SELECT id, code, name, description, created_at, updated_at FROM line_codes WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&lineCode.ID, &lineCode.Code, &lineCode.Name, &lineCode.Description, &lineCode.CreatedAt, &lineCode.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "line code", id)
	}
	return lineCode, nil
}

func (r *lineCodeRepo) Update(ctx context.Context, lineCode *models.LineCode) error {
	query := `UPDATE line_codes SET code = $1, name = $2, description = $3, updated_at = NOW() WHERE id = $4`
	tag, err := r.db.Exec(ctx, query, lineCode.Code, lineCode.Name, lineCode.Description, lineCode.ID)
	if err != nil {
		return mapError(err, "line code", lineCode.ID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "line code", lineCode.ID)
	}
	return nil
}

func (r *lineCodeRepo) List(ctx context.Context, limit, offset int) ([]*models.LineCode, error) {
	query := `
		SELECT id, code, name, description, created_at, updated_at
		FROM line_codes
		ORDER BY code ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lineCodes := []*models.LineCode{}
	for rows.Next() {
		lineCode := &models.LineCode{}
		if err := rows.Scan(&lineCode.ID, &lineCode.Code, &lineCode.Name, &lineCode.Description, &lineCode.CreatedAt, &lineCode.UpdatedAt); err != nil {
			return nil, err
		}
		lineCodes = append(lineCodes, lineCode)
	}
	return lineCodes, rows.Err()
}
