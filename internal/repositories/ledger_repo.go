package repositories

import (
	"context"
	"fmt"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

// LedgerRepository appends and reads inventory ledger entries. Entries are never
// updated; they are only removed by a part force delete.
type LedgerRepository interface {
	Insert(ctx context.Context, entry *models.LedgerEntry) error
	List(ctx context.Context, filter *models.LedgerFilter) ([]*models.LedgerEntry, error)
	History(ctx context.Context, partID int64) ([]*models.LedgerEntry, error)
}

type ledgerRepo struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) LedgerRepository {
	return &ledgerRepo{db: db}
}

const ledgerColumns = `id, part_id, transaction_type, quantity, balance_after, reference_type, reference_id, notes, operated_by, created_at`

func (r *ledgerRepo) Insert(ctx context.Context, entry *models.LedgerEntry) error {
	query := `
		INSERT INTO inventory_ledger (part_id, transaction_type, quantity, balance_after, reference_type, reference_id, notes, operated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, entry.PartID, string(entry.TransactionType), entry.Quantity, entry.BalanceAfter,
		string(entry.Reference.Type), entry.Reference.ID, entry.Notes, entry.OperatedBy).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", mapError(err, "ledger entry", entry.PartID))
	}
	return nil
}

// List returns entries newest first
func (r *ledgerRepo) List(ctx context.Context, filter *models.LedgerFilter) ([]*models.LedgerEntry, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	query := `SELECT ` + ledgerColumns + ` FROM inventory_ledger WHERE 1 = 1`
	args := []any{}
	if filter.PartID != nil {
		args = append(args, *filter.PartID)
		query += fmt.Sprintf(` AND part_id = $%d`, len(args))
	}
	if filter.TransactionType != nil {
		args = append(args, string(*filter.TransactionType))
		query += fmt.Sprintf(` AND transaction_type = $%d`, len(args))
	}
	if filter.ReferenceType != nil {
		args = append(args, string(*filter.ReferenceType))
		query += fmt.Sprintf(` AND reference_type = $%d`, len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.query(ctx, query, args...)
}

// History returns a part's entries in the order they were written
func (r *ledgerRepo) History(ctx context.Context, partID int64) ([]*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM inventory_ledger WHERE part_id = $1 ORDER BY id ASC`
	return r.query(ctx, query, partID)
}

func (r *ledgerRepo) query(ctx context.Context, query string, args ...any) ([]*models.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.LedgerEntry{}
	for rows.Next() {
		entry := &models.LedgerEntry{}
		var transactionType, referenceType string
		if err := rows.Scan(&entry.ID, &entry.PartID, &transactionType, &entry.Quantity, &entry.BalanceAfter,
			&referenceType, &entry.Reference.ID, &entry.Notes, &entry.OperatedBy, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.TransactionType = models.TransactionType(transactionType)
		entry.Reference.Type = models.ReferenceType(referenceType)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
