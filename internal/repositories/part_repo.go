package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type PartRepository interface {
	Create(ctx context.Context, part *models.Part) error
	GetByID(ctx context.Context, id int64) (*models.Part, error)
	GetBySKU(ctx context.Context, sku string) (*models.Part, error)
	GetForUpdate(ctx context.Context, id int64) (*models.Part, error)
	Update(ctx context.Context, part *models.Part) error
	UpdateStock(ctx context.Context, id int64, quantity int) error
	SetArchived(ctx context.Context, id int64, archived bool) error
	Search(ctx context.Context, filter *models.PartSearchFilter) ([]*models.Part, error)
	ListBelowThresholdWithoutAlert(ctx context.Context) ([]*models.Part, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

type partRepo struct {
	db DBTX
}

func NewPartRepository(db DBTX) PartRepository {
	return &partRepo{db: db}
}

const partColumns = `p.id, p.sku, p.name, p.description, p.category_id, p.supplier_id, p.line_code_id, p.unit_price, p.stock_quantity, p.min_stock_threshold, p.unit, p.is_archived, p.created_at, p.updated_at`

func scanPart(row pgx.Row) (*models.Part, error) {
	part := &models.Part{}
	err := row.Scan(&part.ID, &part.SKU, &part.Name, &part.Description, &part.CategoryID, &part.SupplierID, &part.LineCodeID,
		&part.UnitPrice, &part.StockQuantity, &part.MinStockThreshold, &part.Unit, &part.IsArchived, &part.CreatedAt, &part.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return part, nil
}

func (r *partRepo) Create(ctx context.Context, part *models.Part) error {
	query := `
		INSERT INTO parts (sku, name, description, category_id, supplier_id, line_code_id, unit_price, stock_quantity, min_stock_threshold, unit, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, part.SKU, part.Name, part.Description, part.CategoryID, part.SupplierID, part.LineCodeID,
		part.UnitPrice, part.StockQuantity, part.MinStockThreshold, part.Unit).Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
	return mapError(err, "part", part.SKU)
}

func (r *partRepo) GetByID(ctx context.Context, id int64) (*models.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts p WHERE p.id = $1`
	part, err := scanPart(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "part", id)
	}
	return part, nil
}

func (r *partRepo) GetBySKU(ctx context.Context, sku string) (*models.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts p WHERE p.sku = $1`
	part, err := scanPart(r.db.QueryRow(ctx, query, sku))
	if err != nil {
		return nil, mapError(err, "part", sku)
	}
	return part, nil
}

// GetForUpdate locks the part row until the surrounding transaction ends
func (r *partRepo) GetForUpdate(ctx context.Context, id int64) (*models.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts p WHERE p.id = $1 FOR UPDATE`
	part, err := scanPart(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "part", id)
	}
	return part, nil
}

// Update writes every field except stock_quantity, which only UpdateStock may change
func (r *partRepo) Update(ctx context.Context, part *models.Part) error {
	query := `
		UPDATE parts
		SET sku = $1, name = $2, description = $3, category_id = $4, supplier_id = $5, line_code_id = $6, unit_price = $7, min_stock_threshold = $8, unit = $9, updated_at = NOW()
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query, part.SKU, part.Name, part.Description, part.CategoryID, part.SupplierID, part.LineCodeID,
		part.UnitPrice, part.MinStockThreshold, part.Unit, part.ID)
	if err != nil {
		return mapError(err, "part", part.ID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "part", part.ID)
	}
	return nil
}

func (r *partRepo) UpdateStock(ctx context.Context, id int64, quantity int) error {
	query := `UPDATE parts SET stock_quantity = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, quantity, id)
	if err != nil {
		return mapError(err, "part", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "part", id)
	}
	return nil
}

func (r *partRepo) SetArchived(ctx context.Context, id int64, archived bool) error {
	query := `UPDATE parts SET is_archived = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, archived, id)
	if err != nil {
		return mapError(err, "part", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "part", id)
	}
	return nil
}

func (r *partRepo) Search(ctx context.Context, filter *models.PartSearchFilter) ([]*models.Part, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	query := `SELECT ` + partColumns + ` FROM parts p WHERE 1 = 1`
	args := []any{}

	if !filter.IncludeArchived {
		query += ` AND p.is_archived = FALSE`
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(` AND (p.sku ILIKE $%d OR p.name ILIKE $%d OR COALESCE(p.description, '') ILIKE $%d)`, len(args), len(args), len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		query += fmt.Sprintf(` AND p.supplier_id = $%d`, len(args))
	}
	if filter.LineCodeID != nil {
		args = append(args, *filter.LineCodeID)
		query += fmt.Sprintf(` AND p.line_code_id = $%d`, len(args))
	}
	if filter.LowStockOnly {
		query += ` AND p.stock_quantity < p.min_stock_threshold`
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY p.sku ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.queryParts(ctx, query, args...)
}

// ListBelowThresholdWithoutAlert returns active parts under their minimum that have no open alert
func (r *partRepo) ListBelowThresholdWithoutAlert(ctx context.Context) ([]*models.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts p
		WHERE p.is_archived = FALSE
		  AND p.stock_quantity < p.min_stock_threshold
		  AND NOT EXISTS (
			SELECT 1 FROM low_stock_alerts a WHERE a.part_id = p.id AND a.is_resolved = FALSE
		  )
		ORDER BY p.id
	`
	return r.queryParts(ctx, query)
}

func (r *partRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM parts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *partRepo) queryParts(ctx context.Context, query string, args ...any) ([]*models.Part, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := []*models.Part{}
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}
