package models

import "time"

type TransactionType string

const (
	TransactionIn         TransactionType = "in"
	TransactionOut        TransactionType = "out"
	TransactionAdjustment TransactionType = "adjustment"
	TransactionSale       TransactionType = "sale"
	TransactionPurchase   TransactionType = "purchase"
	TransactionCredit     TransactionType = "credit"
	TransactionWarranty   TransactionType = "warranty"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIn, TransactionOut, TransactionAdjustment, TransactionSale,
		TransactionPurchase, TransactionCredit, TransactionWarranty:
		return true
	}
	return false
}

// ReferenceType names what caused a ledger entry. Document references carry an id,
// manual and initial references do not.
type ReferenceType string

const (
	ReferencePurchaseOrder ReferenceType = "purchase_order"
	ReferenceSalesInvoice  ReferenceType = "sales_invoice"
	ReferenceCredit        ReferenceType = "credit"
	ReferenceWarranty      ReferenceType = "warranty"
	ReferenceManual        ReferenceType = "manual"
	ReferenceInitial       ReferenceType = "initial"
)

func (r ReferenceType) Valid() bool {
	switch r {
	case ReferencePurchaseOrder, ReferenceSalesInvoice, ReferenceCredit, ReferenceWarranty,
		ReferenceManual, ReferenceInitial:
		return true
	}
	return false
}

// RequiresID reports whether entries of this reference type must point at a document
func (r ReferenceType) RequiresID() bool {
	switch r {
	case ReferencePurchaseOrder, ReferenceSalesInvoice, ReferenceCredit, ReferenceWarranty:
		return true
	}
	return false
}

// Reference points a ledger entry at its origin
type Reference struct {
	Type ReferenceType `json:"reference_type"`
	ID   *int64        `json:"reference_id"`
}

// DocumentReference builds the reference for stock moved by a document
func DocumentReference(kind DocumentKind, id int64) Reference {
	return Reference{Type: kind.ReferenceType(), ID: &id}
}

// LedgerEntry is an immutable record of one stock movement
type LedgerEntry struct {
	ID              int64           `json:"id" db:"id"`
	PartID          int64           `json:"part_id" db:"part_id"`
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"`
	Quantity        int             `json:"quantity" db:"quantity"` // Signed delta
	BalanceAfter    int             `json:"balance_after" db:"balance_after"`
	Reference
	Notes      *string   `json:"notes" db:"notes"`
	OperatedBy *int64    `json:"operated_by" db:"operated_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// LedgerFilter holds list criteria for ledger queries
type LedgerFilter struct {
	PartID          *int64           `json:"part_id,omitempty"`
	TransactionType *TransactionType `json:"transaction_type,omitempty"`
	ReferenceType   *ReferenceType   `json:"reference_type,omitempty"`
	Limit           int              `json:"limit,omitempty"`
	Offset          int              `json:"offset,omitempty"`
}

// LedgerVerification is the result of replaying a part's ledger against its stock
type LedgerVerification struct {
	PartID          int64  `json:"part_id"`
	Entries         int    `json:"entries"`
	StockQuantity   int    `json:"stock_quantity"`
	ReplayedBalance int    `json:"replayed_balance"`
	FirstMismatchID *int64 `json:"first_mismatch_entry_id,omitempty"`
	Consistent      bool   `json:"consistent"`
}
