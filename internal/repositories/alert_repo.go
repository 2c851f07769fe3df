package repositories

import (
	"context"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type AlertRepository interface {
	Raise(ctx context.Context, alert *models.LowStockAlert) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.LowStockAlert, error)
	Resolve(ctx context.Context, alert *models.LowStockAlert) error
	List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.LowStockAlert, error)
}

type alertRepo struct {
	db DBTX
}

func NewAlertRepository(db DBTX) AlertRepository {
	return &alertRepo{db: db}
}

// Raise inserts an unresolved alert or refreshes the part's open one.
// It reports true when a new row was inserted.
func (r *alertRepo) Raise(ctx context.Context, alert *models.LowStockAlert) (bool, error) {
	query := `
		INSERT INTO low_stock_alerts (part_id, current_stock, min_threshold, is_resolved, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		ON CONFLICT (part_id) WHERE is_resolved = FALSE DO UPDATE
		SET current_stock = EXCLUDED.current_stock, min_threshold = EXCLUDED.min_threshold
		RETURNING id, created_at, (xmax = 0) AS inserted
	`
	var inserted bool
	err := r.db.QueryRow(ctx, query, alert.PartID, alert.CurrentStock, alert.MinThreshold).Scan(&alert.ID, &alert.CreatedAt, &inserted)
	if err != nil {
		return false, mapError(err, "low stock alert", alert.PartID)
	}
	alert.IsResolved = false
	alert.ResolvedAt = nil
	return inserted, nil
}

func (r *alertRepo) GetByID(ctx context.Context, id int64) (*models.LowStockAlert, error) {
	alert := &models.LowStockAlert{}
	query := `
		SELECT a.id, a.part_id, p.sku, p.name, a.current_stock, a.min_threshold, a.is_resolved, a.created_at, a.resolved_at
		FROM low_stock_alerts a
		JOIN parts p ON p.id = a.part_id
		WHERE a.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&alert.ID, &alert.PartID, &alert.PartSKU, &alert.PartName, &alert.CurrentStock,
		&alert.MinThreshold, &alert.IsResolved, &alert.CreatedAt, &alert.ResolvedAt)
	if err != nil {
		return nil, mapError(err, "low stock alert", id)
	}
	return alert, nil
}

func (r *alertRepo) Resolve(ctx context.Context, alert *models.LowStockAlert) error {
	query := `
		UPDATE low_stock_alerts
		SET is_resolved = TRUE, resolved_at = NOW()
		WHERE id = $1 AND is_resolved = FALSE
		RETURNING resolved_at
	`
	err := r.db.QueryRow(ctx, query, alert.ID).Scan(&alert.ResolvedAt)
	if err != nil {
		return mapError(err, "low stock alert", alert.ID)
	}
	alert.IsResolved = true
	return nil
}

func (r *alertRepo) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.LowStockAlert, error) {
	query := `
		SELECT a.id, a.part_id, p.sku, p.name, a.current_stock, a.min_threshold, a.is_resolved, a.created_at, a.resolved_at
		FROM low_stock_alerts a
		JOIN parts p ON p.id = a.part_id
		WHERE ($1 = FALSE OR a.is_resolved = FALSE)
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, unresolvedOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []*models.LowStockAlert{}
	for rows.Next() {
		alert := &models.LowStockAlert{}
		if err := rows.Scan(&alert.ID, &alert.PartID, &alert.PartSKU, &alert.PartName, &alert.CurrentStock,
			&alert.MinThreshold, &alert.IsResolved, &alert.CreatedAt, &alert.ResolvedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}
