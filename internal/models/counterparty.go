package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	ContactPerson   *string         `json:"contact_person" db:"contact_person"`
	Phone           *string         `json:"phone" db:"phone"`
	Email           *string         `json:"email" db:"email"`
	Address         *string         `json:"address" db:"address"`
	AccountsPayable decimal.Decimal `json:"accounts_payable" db:"accounts_payable"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

type Customer struct {
	ID                 int64           `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	ContactPerson      *string         `json:"contact_person" db:"contact_person"`
	Phone              *string         `json:"phone" db:"phone"`
	Email              *string         `json:"email" db:"email"`
	Address            *string         `json:"address" db:"address"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable" db:"accounts_receivable"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}
