package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
)

// DBTX is the query surface shared by *pgxpool.Pool, pgx.Tx and pgxmock
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner is a DBTX that can open transactions
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories groups every repository bound to the same connection or transaction
type Repositories struct {
	Parts      PartRepository
	Suppliers  SupplierRepository
	Customers  CustomerRepository
	LineCodes  LineCodeRepository
	Categories CategoryRepository
	Documents  DocumentRepository
	Ledger     LedgerRepository
	Alerts     AlertRepository
	Cascade    CascadeRepository
	Users      UserRepository
}

func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Parts:      NewPartRepository(db),
		Suppliers:  NewSupplierRepository(db),
		Customers:  NewCustomerRepository(db),
		LineCodes:  NewLineCodeRepository(db),
		Categories: NewCategoryRepository(db),
		Documents:  NewDocumentRepository(db),
		Ledger:     NewLedgerRepository(db),
		Alerts:     NewAlertRepository(db),
		Cascade:    NewCascadeRepository(db),
		Users:      NewUserRepository(db),
	}
}

// Transactor runs a unit of work against repositories bound to one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos *Repositories) error) error
}

type pgTransactor struct {
	db TxBeginner
}

func NewTransactor(db TxBeginner) Transactor {
	return &pgTransactor{db: db}
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(repos *Repositories) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// mapError converts driver errors into the common error taxonomy
func mapError(err error, resource string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewNotFoundError(resource, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return common.NewValidationError(pgErr.ConstraintName, fmt.Sprintf("%s already exists", resource))
		case pgForeignKeyViolation:
			// Writes pointing at a missing row; deletes go through mapDeleteError
			return common.NewValidationError(pgErr.ConstraintName, "references a record that does not exist")
		case pgCheckViolation:
			return common.NewValidationError(pgErr.ConstraintName, pgErr.Message)
		case pgNumericOutOfRange:
			field := pgErr.ColumnName
			if field == "" {
				field = resource
			}
			return common.NewValidationError(field, "value is out of range")
		}
	}
	return err
}

// mapDeleteError reports rows still referencing the deleted entity as a ReferentialConflictError
func mapDeleteError(err error, resource string, id int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return &common.ReferentialConflictError{Resource: resource, ID: id}
	}
	return mapError(err, resource, id)
}
