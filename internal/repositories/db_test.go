package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
)

func TestWithinTx_Commits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE parts SET stock_quantity = \$1`).
		WithArgs(5, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err = NewTransactor(mock).WithinTx(context.Background(), func(repos *Repositories) error {
		return repos.Parts.UpdateStock(context.Background(), 1, 5)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	failure := errors.New("ledger insert failed")
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE parts SET stock_quantity = \$1`).
		WithArgs(5, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectRollback()

	err = NewTransactor(mock).WithinTx(context.Background(), func(repos *Repositories) error {
		if err := repos.Parts.UpdateStock(context.Background(), 1, 5); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_BeginFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err = NewTransactor(mock).WithinTx(context.Background(), func(repos *Repositories) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin transaction")
	assert.False(t, called)
}

func TestMapError(t *testing.T) {
	var notFound *common.NotFoundError
	assert.True(t, errors.As(mapError(pgx.ErrNoRows, "part", int64(1)), &notFound))

	var validation *common.ValidationError
	dup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "parts_sku_key"}
	require.True(t, errors.As(mapError(dup, "part", "BP-1"), &validation))
	assert.Equal(t, "parts_sku_key", validation.Field)

	var fkValidation *common.ValidationError
	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "sales_invoices_created_by_fkey"}
	require.True(t, errors.As(mapError(fk, "sales invoice", "SI-202610-0001"), &fkValidation))
	assert.Equal(t, "sales_invoices_created_by_fkey", fkValidation.Field)
	var conflict *common.ReferentialConflictError
	assert.False(t, errors.As(mapError(fk, "sales invoice", "SI-202610-0001"), &conflict))

	var rangeErr *common.ValidationError
	overflow := &pgconn.PgError{Code: pgNumericOutOfRange, Message: "integer out of range"}
	require.True(t, errors.As(mapError(overflow, "part", int64(1)), &rangeErr))
	assert.Equal(t, "part", rangeErr.Field)
	columnOverflow := &pgconn.PgError{Code: pgNumericOutOfRange, ColumnName: "total_amount"}
	require.True(t, errors.As(mapError(columnOverflow, "credit", "CR-1"), &rangeErr))
	assert.Equal(t, "total_amount", rangeErr.Field)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other, "part", int64(1)))
	assert.NoError(t, mapError(nil, "part", int64(1)))
}

func TestMapDeleteError(t *testing.T) {
	var conflict *common.ReferentialConflictError
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}
	require.True(t, errors.As(mapDeleteError(fk, "line code", 3), &conflict))
	assert.Equal(t, int64(3), conflict.ID)

	var notFound *common.NotFoundError
	assert.True(t, errors.As(mapDeleteError(pgx.ErrNoRows, "line code", 3), &notFound))
}
