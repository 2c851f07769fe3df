package common

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError is returned when an id does not resolve to a row
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError is returned for missing fields, empty item lists and malformed numbers
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError is returned when a mutation would drive stock below zero
type InsufficientStockError struct {
	PartID    int64
	SKU       string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	name := e.SKU
	if name == "" {
		name = fmt.Sprintf("#%d", e.PartID)
	}
	return fmt.Sprintf("insufficient stock for part %s: available %d, requested %d", name, e.Available, e.Requested)
}

// InvalidStateError is returned when a document status guard rejects a transition
type InvalidStateError struct {
	Resource string
	ID       int64
	Status   string
	Action   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s %d in status %q", e.Action, e.Resource, e.ID, e.Status)
}

// ReferentialConflictError is returned when a plain delete is blocked by dependent rows.
// Dependents maps table name to the number of rows still referencing the target.
type ReferentialConflictError struct {
	Resource   string
	ID         int64
	Dependents map[string]int64
}

func (e *ReferentialConflictError) Error() string {
	if len(e.Dependents) == 0 {
		return fmt.Sprintf("%s %d is still referenced by other records", e.Resource, e.ID)
	}
	tables := make([]string, 0, len(e.Dependents))
	for table := range e.Dependents {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("%s=%d", table, e.Dependents[table]))
	}
	return fmt.Sprintf("%s %d is still referenced by %s", e.Resource, e.ID, strings.Join(parts, ", "))
}
