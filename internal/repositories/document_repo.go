package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

// documentTable maps a document kind onto its header and item tables
type documentTable struct {
	header            string
	items             string
	itemFK            string
	number            string
	counterparty      string
	counterpartyTable string
	reason            string // Empty when the kind has no reason column
	hasOriginal       bool
}

var documentTables = map[models.DocumentKind]documentTable{
	models.KindPurchaseOrder: {
		header: "purchase_orders", items: "purchase_order_items", itemFK: "purchase_order_id",
		number: "order_number", counterparty: "supplier_id", counterpartyTable: "suppliers",
	},
	models.KindSalesInvoice: {
		header: "sales_invoices", items: "sales_invoice_items", itemFK: "sales_invoice_id",
		number: "invoice_number", counterparty: "customer_id", counterpartyTable: "customers",
	},
	models.KindCredit: {
		header: "credits", items: "credit_items", itemFK: "credit_id",
		number: "credit_number", counterparty: "customer_id", counterpartyTable: "customers",
		reason: "reason", hasOriginal: true,
	},
	models.KindWarranty: {
		header: "warranties", items: "warranty_items", itemFK: "warranty_id",
		number: "warranty_number", counterparty: "customer_id", counterpartyTable: "customers",
		reason: "claim_reason", hasOriginal: true,
	},
}

func tableFor(kind models.DocumentKind) (documentTable, error) {
	t, ok := documentTables[kind]
	if !ok {
		return documentTable{}, common.NewValidationError("kind", fmt.Sprintf("unknown document kind %q", kind))
	}
	return t, nil
}

func (t documentTable) selectHeader() string {
	original := "NULL::varchar"
	if t.hasOriginal {
		original = "d.original_invoice_number"
	}
	reason := "NULL::text"
	if t.reason != "" {
		reason = "d." + t.reason
	}
	return fmt.Sprintf(`
		SELECT d.id, d.%s, d.%s, c.name, d.total_amount, d.status, d.notes, %s, %s, d.created_by, COALESCE(u.name, u.username), d.created_at, d.updated_at
		FROM %s d
		JOIN %s c ON c.id = d.%s
		LEFT JOIN users u ON u.id = d.created_by`,
		t.number, t.counterparty, original, reason, t.header, t.counterpartyTable, t.counterparty)
}

type DocumentRepository interface {
	NextNumber(ctx context.Context, kind models.DocumentKind, period string) (int, error)
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error)
	GetForUpdate(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error)
	ListItems(ctx context.Context, kind models.DocumentKind, documentID int64) ([]models.DocumentItem, error)
	UpdateStatus(ctx context.Context, kind models.DocumentKind, id int64, status models.DocumentStatus) error
	List(ctx context.Context, kind models.DocumentKind, filter *models.DocumentFilter) ([]*models.Document, error)
	SalesHistoryBySKU(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error)
}

type documentRepo struct {
	db DBTX
}

func NewDocumentRepository(db DBTX) DocumentRepository {
	return &documentRepo{db: db}
}

// NextNumber increments the per kind and period counter and returns the new value
func (r *documentRepo) NextNumber(ctx context.Context, kind models.DocumentKind, period string) (int, error) {
	query := `
		INSERT INTO document_sequences (kind, period, last_number, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (kind, period) DO UPDATE
		SET last_number = document_sequences.last_number + 1, updated_at = NOW()
		RETURNING last_number
	`
	var next int
	if err := r.db.QueryRow(ctx, query, string(kind), period).Scan(&next); err != nil {
		return 0, fmt.Errorf("next %s number: %w", kind.Label(), err)
	}
	return next, nil
}

// Create inserts the header and then each item, filling in generated ids
func (r *documentRepo) Create(ctx context.Context, doc *models.Document) error {
	t, err := tableFor(doc.Kind)
	if err != nil {
		return err
	}

	columns := fmt.Sprintf("%s, %s, total_amount, status, notes, created_by", t.number, t.counterparty)
	values := "$1, $2, $3, $4, $5, $6"
	args := []any{doc.Number, doc.CounterpartyID, doc.TotalAmount, string(doc.Status), doc.Notes, doc.CreatedBy}
	if t.hasOriginal {
		args = append(args, doc.OriginalInvoiceNumber)
		columns += ", original_invoice_number"
		values += fmt.Sprintf(", $%d", len(args))
	}
	if t.reason != "" {
		args = append(args, doc.Reason)
		columns += ", " + t.reason
		values += fmt.Sprintf(", $%d", len(args))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, created_at, updated_at)
		VALUES (%s, NOW(), NOW())
		RETURNING id, created_at, updated_at`, t.header, columns, values)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return mapError(err, doc.Kind.Label(), doc.Number)
	}

	itemQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, part_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, t.items, t.itemFK)
	for i := range doc.Items {
		item := &doc.Items[i]
		item.DocumentID = doc.ID
		item.Kind = doc.Kind
		if err := r.db.QueryRow(ctx, itemQuery, doc.ID, item.PartID, item.Quantity, item.UnitPrice, item.Subtotal).Scan(&item.ID); err != nil {
			return mapError(err, doc.Kind.Label()+" item", item.PartID)
		}
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	return r.get(ctx, kind, id, "")
}

// GetForUpdate locks the header row so status guards hold until commit
func (r *documentRepo) GetForUpdate(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	return r.get(ctx, kind, id, " FOR UPDATE OF d")
}

func (r *documentRepo) get(ctx context.Context, kind models.DocumentKind, id int64, lock string) (*models.Document, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := t.selectHeader() + ` WHERE d.id = $1` + lock
	doc, err := scanDocument(r.db.QueryRow(ctx, query, id), kind)
	if err != nil {
		return nil, mapError(err, kind.Label(), id)
	}

	items, err := r.ListItems(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

func scanDocument(row pgx.Row, kind models.DocumentKind) (*models.Document, error) {
	doc := &models.Document{Kind: kind}
	var status string
	err := row.Scan(&doc.ID, &doc.Number, &doc.CounterpartyID, &doc.CounterpartyName, &doc.TotalAmount, &status, &doc.Notes,
		&doc.OriginalInvoiceNumber, &doc.Reason, &doc.CreatedBy, &doc.CreatedByName, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	doc.Status = models.DocumentStatus(status)
	return doc, nil
}

func (r *documentRepo) ListItems(ctx context.Context, kind models.DocumentKind, documentID int64) ([]models.DocumentItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.%s, i.part_id, p.sku, p.name, lc.code, i.quantity, i.unit_price, i.subtotal
		FROM %s i
		JOIN parts p ON p.id = i.part_id
		LEFT JOIN line_codes lc ON lc.id = p.line_code_id
		WHERE i.%s = $1
		ORDER BY i.id`, t.itemFK, t.items, t.itemFK)
	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.DocumentItem{}
	for rows.Next() {
		item := models.DocumentItem{Kind: kind}
		if err := rows.Scan(&item.ID, &item.DocumentID, &item.PartID, &item.PartSKU, &item.PartName, &item.LineCode,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *documentRepo) UpdateStatus(ctx context.Context, kind models.DocumentKind, id int64, status models.DocumentStatus) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = NOW() WHERE id = $2`, t.header)
	tag, err := r.db.Exec(ctx, query, string(status), id)
	if err != nil {
		return mapError(err, kind.Label(), id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, kind.Label(), id)
	}
	return nil
}

func (r *documentRepo) List(ctx context.Context, kind models.DocumentKind, filter *models.DocumentFilter) ([]*models.Document, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	query := t.selectHeader() + ` WHERE 1 = 1`
	args := []any{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(` AND d.status = $%d`, len(args))
	}
	if filter.CounterpartyID != nil {
		args = append(args, *filter.CounterpartyID)
		query += fmt.Sprintf(` AND d.%s = $%d`, t.counterparty, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(` AND d.%s ILIKE $%d`, t.number, len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY d.created_at DESC, d.id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows, kind)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SalesHistoryBySKU returns every sales-invoice line for the part, newest invoice first
func (r *documentRepo) SalesHistoryBySKU(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error) {
	query := `
		SELECT si.id, si.invoice_number, si.created_at, sii.quantity, sii.unit_price, c.name
		FROM sales_invoice_items sii
		JOIN sales_invoices si ON si.id = sii.sales_invoice_id
		JOIN customers c ON c.id = si.customer_id
		JOIN parts p ON p.id = sii.part_id
		WHERE p.sku = $1
		ORDER BY si.created_at DESC, sii.id DESC
	`
	rows, err := r.db.Query(ctx, query, sku)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []models.SalesHistoryRecord{}
	for rows.Next() {
		var record models.SalesHistoryRecord
		if err := rows.Scan(&record.InvoiceID, &record.InvoiceNumber, &record.InvoiceDate, &record.Quantity, &record.UnitPrice, &record.CustomerName); err != nil {
			return nil, err
		}
		history = append(history, record)
	}
	return history, rows.Err()
}
