package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeStockMoved      = "inventory.stock_moved"
	EventTypeLowStock        = "inventory.low_stock"
	EventTypeDocumentCreated = "inventory.document_created"
)

// Kafka topics
const (
	TopicStockMoved = "inventory.stock-moved"
	TopicLowStock   = "inventory.low-stock"
	TopicDocuments  = "inventory.documents"
)

// StockMovedEvent is emitted once per committed stock mutation
type StockMovedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	PartID          int64     `json:"part_id"`
	SKU             string    `json:"sku"`
	Delta           int       `json:"delta"`
	BalanceAfter    int       `json:"balance_after"`
	TransactionType string    `json:"transaction_type"`
	ReferenceType   string    `json:"reference_type"`
	ReferenceID     *int64    `json:"reference_id"`
	LedgerEntryID   int64     `json:"ledger_entry_id"`
	Timestamp       time.Time `json:"timestamp"`
}

// LowStockEvent is emitted when a mutation leaves a part below its threshold
type LowStockEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	AlertID      int64     `json:"alert_id"`
	PartID       int64     `json:"part_id"`
	SKU          string    `json:"sku"`
	CurrentStock int       `json:"current_stock"`
	MinThreshold int       `json:"min_threshold"`
	Timestamp    time.Time `json:"timestamp"`
}

// DocumentCreatedEvent is emitted after a document and its stock effects commit
type DocumentCreatedEvent struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	Kind           string          `json:"kind"`
	DocumentID     int64           `json:"document_id"`
	Number         string          `json:"number"`
	Status         string          `json:"status"`
	CounterpartyID int64           `json:"counterparty_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Timestamp      time.Time       `json:"timestamp"`
}
