package common

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every monetary column
const MoneyPlaces = 2

// MoneyIntegerDigits is what NUMERIC(15,2) leaves in front of the decimal point
const MoneyIntegerDigits = 13

// MaxQuantity is the largest quantity or stock level an INTEGER column holds
const MaxQuantity = math.MaxInt32

var moneyLimit = decimal.New(1, MoneyIntegerDigits)

// ParseMoney parses a decimal string such as "19.99". Negative amounts are rejected.
func ParseMoney(value, fieldName string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, NewValidationError(fieldName, "is required")
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, NewValidationError(fieldName, "must be a decimal number")
	}
	if amount.IsNegative() {
		return decimal.Zero, NewValidationError(fieldName, "must not be negative")
	}
	return CheckMoney(RoundMoney(amount), fieldName)
}

// CheckMoney rejects amounts that do not fit a NUMERIC(15,2) column
func CheckMoney(amount decimal.Decimal, fieldName string) (decimal.Decimal, error) {
	if amount.Abs().GreaterThanOrEqual(moneyLimit) {
		return decimal.Zero, NewValidationError(fieldName, fmt.Sprintf("must have at most %d digits before the decimal point", MoneyIntegerDigits))
	}
	return amount, nil
}

// CheckQuantity rejects quantities that do not fit an INTEGER column
func CheckQuantity(quantity int, fieldName string) error {
	if quantity > MaxQuantity || quantity < -MaxQuantity {
		return NewValidationError(fieldName, fmt.Sprintf("must be between %d and %d", -MaxQuantity, MaxQuantity))
	}
	return nil
}

// ParseOptionalMoney returns zero for an empty value
func ParseOptionalMoney(value *string, fieldName string) (decimal.Decimal, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return decimal.Zero, nil
	}
	return ParseMoney(*value, fieldName)
}

func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// LineSubtotal is quantity x unit price rounded to cents
func LineSubtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}
