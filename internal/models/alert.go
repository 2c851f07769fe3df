package models

import "time"

type LowStockAlert struct {
	ID           int64      `json:"id" db:"id"`
	PartID       int64      `json:"part_id" db:"part_id"`
	PartSKU      string     `json:"part_sku,omitempty" db:"-"`
	PartName     string     `json:"part_name,omitempty" db:"-"`
	CurrentStock int        `json:"current_stock" db:"current_stock"`
	MinThreshold int        `json:"min_threshold" db:"min_threshold"`
	IsResolved   bool       `json:"is_resolved" db:"is_resolved"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at" db:"resolved_at"`
}
