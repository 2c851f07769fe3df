package models

// EntityKind names the catalog entities that can be deleted through the cascade rules
type EntityKind string

const (
	EntityPart     EntityKind = "part"
	EntityCustomer EntityKind = "customer"
	EntitySupplier EntityKind = "supplier"
	EntityLineCode EntityKind = "line_code"
	EntityCategory EntityKind = "category"
)

// Forceable reports whether a cascading delete is defined for the entity
func (e EntityKind) Forceable() bool {
	switch e {
	case EntityPart, EntityCustomer, EntitySupplier:
		return true
	}
	return false
}

// ForceDeleteResult counts the rows removed or detached per table
type ForceDeleteResult struct {
	Entity   EntityKind       `json:"entity"`
	ID       int64            `json:"id"`
	Affected map[string]int64 `json:"affected"`
}
