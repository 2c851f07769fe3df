package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartSearchFilter holds search and filter criteria for part queries
type PartSearchFilter struct {
	Query           string `json:"query,omitempty"`            // Matches sku, name or description
	CategoryID      *int64 `json:"category_id,omitempty"`      // Filter by category
	SupplierID      *int64 `json:"supplier_id,omitempty"`      // Filter by supplier
	LineCodeID      *int64 `json:"line_code_id,omitempty"`     // Filter by line code
	LowStockOnly    bool   `json:"low_stock_only,omitempty"`   // stock_quantity < min_stock_threshold
	IncludeArchived bool   `json:"include_archived,omitempty"` // Archived parts are hidden by default
	Limit           int    `json:"limit,omitempty"`            // Page size (default: 50)
	Offset          int    `json:"offset,omitempty"`           // Page offset
}

type Part struct {
	ID                int64           `json:"id" db:"id"`
	SKU               string          `json:"sku" db:"sku"`
	Name              string          `json:"name" db:"name"`
	Description       *string         `json:"description" db:"description"`
	CategoryID        *int64          `json:"category_id" db:"category_id"`
	SupplierID        *int64          `json:"supplier_id" db:"supplier_id"`
	LineCodeID        *int64          `json:"line_code_id" db:"line_code_id"`
	UnitPrice         decimal.Decimal `json:"unit_price" db:"unit_price"`
	StockQuantity     int             `json:"stock_quantity" db:"stock_quantity"`
	MinStockThreshold int             `json:"min_stock_threshold" db:"min_stock_threshold"`
	Unit              string          `json:"unit" db:"unit"`
	IsArchived        bool            `json:"is_archived" db:"is_archived"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// IsLowStock reports whether the part sits below its configured minimum
func (p *Part) IsLowStock() bool {
	return p.StockQuantity < p.MinStockThreshold
}
