package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind tags the four document types that share one header and item shape
type DocumentKind string

const (
	KindPurchaseOrder DocumentKind = "purchase_order"
	KindSalesInvoice  DocumentKind = "sales_invoice"
	KindCredit        DocumentKind = "credit"
	KindWarranty      DocumentKind = "warranty"
)

// DocumentKinds lists every kind in a stable order
var DocumentKinds = []DocumentKind{KindPurchaseOrder, KindSalesInvoice, KindCredit, KindWarranty}

func (k DocumentKind) Valid() bool {
	switch k {
	case KindPurchaseOrder, KindSalesInvoice, KindCredit, KindWarranty:
		return true
	}
	return false
}

// NumberPrefix is used when a document number is allocated by the system
func (k DocumentKind) NumberPrefix() string {
	switch k {
	case KindPurchaseOrder:
		return "PO"
	case KindSalesInvoice:
		return "SI"
	case KindCredit:
		return "CR"
	case KindWarranty:
		return "WR"
	}
	return "DOC"
}

// Label is the human readable name used in messages
func (k DocumentKind) Label() string {
	switch k {
	case KindPurchaseOrder:
		return "purchase order"
	case KindSalesInvoice:
		return "sales invoice"
	case KindCredit:
		return "credit"
	case KindWarranty:
		return "warranty"
	}
	return string(k)
}

// ReferenceType is the ledger reference written for stock moved by this kind
func (k DocumentKind) ReferenceType() ReferenceType {
	return ReferenceType(k)
}

// CounterpartyIsSupplier is true for purchase orders; every other kind belongs to a customer
func (k DocumentKind) CounterpartyIsSupplier() bool {
	return k == KindPurchaseOrder
}

type DocumentStatus string

const (
	StatusPending   DocumentStatus = "pending"
	StatusReceived  DocumentStatus = "received"
	StatusCompleted DocumentStatus = "completed"
	StatusApproved  DocumentStatus = "approved"
	StatusRejected  DocumentStatus = "rejected"
	StatusCancelled DocumentStatus = "cancelled"
)

// Document is the header shared by purchase orders, sales invoices, credits and warranties.
// CounterpartyID is the supplier for purchase orders and the customer otherwise.
type Document struct {
	ID                    int64           `json:"id" db:"id"`
	Kind                  DocumentKind    `json:"kind" db:"-"`
	Number                string          `json:"number" db:"number"`
	CounterpartyID        int64           `json:"counterparty_id" db:"counterparty_id"`
	CounterpartyName      string          `json:"counterparty_name" db:"-"`
	TotalAmount           decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status                DocumentStatus  `json:"status" db:"status"`
	Notes                 *string         `json:"notes" db:"notes"`
	OriginalInvoiceNumber *string         `json:"original_invoice_number,omitempty" db:"original_invoice_number"`
	Reason                *string         `json:"reason,omitempty" db:"reason"`
	CreatedBy             *int64          `json:"created_by" db:"created_by"`
	CreatedByName         *string         `json:"created_by_name" db:"-"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at" db:"updated_at"`
	Items                 []DocumentItem  `json:"items,omitempty" db:"-"`
}

// DocumentItem is one line of any document kind
type DocumentItem struct {
	ID         int64           `json:"id" db:"id"`
	DocumentID int64           `json:"document_id" db:"document_id"`
	Kind       DocumentKind    `json:"-" db:"-"`
	PartID     int64           `json:"part_id" db:"part_id"`
	PartSKU    string          `json:"part_sku,omitempty" db:"-"`
	PartName   string          `json:"part_name,omitempty" db:"-"`
	LineCode   *string         `json:"line_code,omitempty" db:"-"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// DocumentFilter holds list criteria shared by every document kind
type DocumentFilter struct {
	Status         *DocumentStatus `json:"status,omitempty"`
	CounterpartyID *int64          `json:"counterparty_id,omitempty"`
	Query          string          `json:"query,omitempty"` // Matches the document number
	Limit          int             `json:"limit,omitempty"`
	Offset         int             `json:"offset,omitempty"`
}

// SalesHistoryRecord is one historical sales-invoice line for a part
type SalesHistoryRecord struct {
	InvoiceID     int64           `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CustomerName  string          `json:"customer_name"`
}

// DocumentInput is the create request shared by every document kind.
// An empty Number asks the service to allocate one.
type DocumentInput struct {
	Kind                  DocumentKind        `json:"kind"`
	Number                string              `json:"number"`
	CounterpartyID        int64               `json:"counterparty_id"`
	Notes                 *string             `json:"notes"`
	OriginalInvoiceNumber *string             `json:"original_invoice_number"`
	Reason                *string             `json:"reason"`
	Items                 []DocumentItemInput `json:"items"`
}

type DocumentItemInput struct {
	PartID    int64           `json:"part_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
