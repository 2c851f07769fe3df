package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type dependentRef struct {
	table  string
	column string
}

var entityTables = map[models.EntityKind]string{
	models.EntityPart:     "parts",
	models.EntityCustomer: "customers",
	models.EntitySupplier: "suppliers",
	models.EntityLineCode: "line_codes",
	models.EntityCategory: "part_categories",
}

// dependents lists every table holding a foreign key to the entity
var dependents = map[models.EntityKind][]dependentRef{
	models.EntityPart: {
		{"inventory_ledger", "part_id"},
		{"low_stock_alerts", "part_id"},
		{"purchase_order_items", "part_id"},
		{"sales_invoice_items", "part_id"},
		{"credit_items", "part_id"},
		{"warranty_items", "part_id"},
	},
	models.EntityCustomer: {
		{"sales_invoices", "customer_id"},
		{"credits", "customer_id"},
		{"warranties", "customer_id"},
	},
	models.EntitySupplier: {
		{"purchase_orders", "supplier_id"},
		{"parts", "supplier_id"},
	},
	models.EntityLineCode: {
		{"parts", "line_code_id"},
	},
	models.EntityCategory: {
		{"parts", "category_id"},
	},
}

type cascadeStep struct {
	table string
	sql   string
}

// forceDeleteSteps run in order; each takes the target id as $1
var forceDeleteSteps = map[models.EntityKind][]cascadeStep{
	models.EntityPart: {
		{"inventory_ledger", `DELETE FROM inventory_ledger WHERE part_id = $1`},
		{"low_stock_alerts", `DELETE FROM low_stock_alerts WHERE part_id = $1`},
		{"purchase_order_items", `DELETE FROM purchase_order_items WHERE part_id = $1`},
		{"sales_invoice_items", `DELETE FROM sales_invoice_items WHERE part_id = $1`},
		{"credit_items", `DELETE FROM credit_items WHERE part_id = $1`},
		{"warranty_items", `DELETE FROM warranty_items WHERE part_id = $1`},
		{"parts", `DELETE FROM parts WHERE id = $1`},
	},
	models.EntityCustomer: {
		{"sales_invoice_items", `DELETE FROM sales_invoice_items WHERE sales_invoice_id IN (SELECT id FROM sales_invoices WHERE customer_id = $1)`},
		{"sales_invoices", `DELETE FROM sales_invoices WHERE customer_id = $1`},
		{"credit_items", `DELETE FROM credit_items WHERE credit_id IN (SELECT id FROM credits WHERE customer_id = $1)`},
		{"credits", `DELETE FROM credits WHERE customer_id = $1`},
		{"warranty_items", `DELETE FROM warranty_items WHERE warranty_id IN (SELECT id FROM warranties WHERE customer_id = $1)`},
		{"warranties", `DELETE FROM warranties WHERE customer_id = $1`},
		{"customers", `DELETE FROM customers WHERE id = $1`},
	},
	models.EntitySupplier: {
		{"purchase_order_items", `DELETE FROM purchase_order_items WHERE purchase_order_id IN (SELECT id FROM purchase_orders WHERE supplier_id = $1)`},
		{"purchase_orders", `DELETE FROM purchase_orders WHERE supplier_id = $1`},
		{"parts", `UPDATE parts SET supplier_id = NULL, updated_at = NOW() WHERE supplier_id = $1`},
		{"suppliers", `DELETE FROM suppliers WHERE id = $1`},
	},
}

// CascadeRepository implements plain and forced deletes for catalog entities
type CascadeRepository interface {
	Exists(ctx context.Context, entity models.EntityKind, id int64) (bool, error)
	CountDependents(ctx context.Context, entity models.EntityKind, id int64) (map[string]int64, error)
	Delete(ctx context.Context, entity models.EntityKind, id int64) error
	ForceDelete(ctx context.Context, entity models.EntityKind, id int64) (map[string]int64, error)
}

type cascadeRepo struct {
	db DBTX
}

func NewCascadeRepository(db DBTX) CascadeRepository {
	return &cascadeRepo{db: db}
}

func entityTable(entity models.EntityKind) (string, error) {
	table, ok := entityTables[entity]
	if !ok {
		return "", common.NewValidationError("entity", fmt.Sprintf("unknown entity %q", entity))
	}
	return table, nil
}

func (r *cascadeRepo) Exists(ctx context.Context, entity models.EntityKind, id int64) (bool, error) {
	table, err := entityTable(entity)
	if err != nil {
		return false, err
	}

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CountDependents returns only tables with at least one referencing row
func (r *cascadeRepo) CountDependents(ctx context.Context, entity models.EntityKind, id int64) (map[string]int64, error) {
	if _, err := entityTable(entity); err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, ref := range dependents[entity] {
		var count int64
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, ref.table, ref.column)
		if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
			return nil, fmt.Errorf("count %s: %w", ref.table, err)
		}
		if count > 0 {
			counts[ref.table] = count
		}
	}
	return counts, nil
}

func (r *cascadeRepo) Delete(ctx context.Context, entity models.EntityKind, id int64) error {
	table, err := entityTable(entity)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return mapDeleteError(err, string(entity), id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, string(entity), id)
	}
	return nil
}

// ForceDelete removes or detaches every dependent row and then the entity itself.
// Callers run it inside a transaction so a failed step leaves nothing changed.
func (r *cascadeRepo) ForceDelete(ctx context.Context, entity models.EntityKind, id int64) (map[string]int64, error) {
	steps, ok := forceDeleteSteps[entity]
	if !ok {
		return nil, common.NewValidationError("entity", fmt.Sprintf("force delete is not supported for %s", entity))
	}

	affected := map[string]int64{}
	for _, step := range steps {
		tag, err := r.db.Exec(ctx, step.sql, id)
		if err != nil {
			return nil, fmt.Errorf("force delete %s %d at %s: %w", entity, id, step.table, err)
		}
		affected[step.table] += tag.RowsAffected()
	}
	return affected, nil
}
