package models

// StockMode selects how StockMutation.Quantity is interpreted
type StockMode int

const (
	StockDelta StockMode = iota
	StockAbsolute
)

// StockMutation is a request to change one part's stock_quantity
type StockMutation struct {
	PartID          int64
	Mode            StockMode
	Quantity        int // Signed delta, or the new balance when Mode is StockAbsolute
	TransactionType TransactionType
	Reference       Reference
	Notes           *string
	OperatedBy      *int64
}

// StockMovement describes a committed stock change and its side effects
type StockMovement struct {
	PartID          int64           `json:"part_id"`
	SKU             string          `json:"sku"`
	PreviousBalance int             `json:"previous_balance"`
	NewBalance      int             `json:"new_balance"`
	Delta           int             `json:"delta"`
	TransactionType TransactionType `json:"transaction_type"`
	Reference       Reference       `json:"reference"`
	LedgerEntryID   int64           `json:"ledger_entry_id"`
	Alert           *LowStockAlert  `json:"alert,omitempty"`
	AlertCreated    bool            `json:"alert_created,omitempty"`
}
