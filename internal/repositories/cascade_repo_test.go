package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

type CascadeRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    CascadeRepository
	context context.Context
}

func (suite *CascadeRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCascadeRepository(mock)
	suite.context = context.Background()
}

func (suite *CascadeRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestCascadeRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CascadeRepoTestSuite))
}

func (suite *CascadeRepoTestSuite) expectCount(table, column string, id int64, count int64) {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ` + table + ` WHERE ` + column + ` = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(count))
}

func (suite *CascadeRepoTestSuite) TestCountDependents_LineCode() {
	suite.expectCount("parts", "line_code_id", 4, 3)

	counts, err := suite.repo.CountDependents(suite.context, models.EntityLineCode, 4)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]int64{"parts": 3}, counts)
}

func (suite *CascadeRepoTestSuite) TestCountDependents_OmitsEmptyTables() {
	suite.expectCount("sales_invoices", "customer_id", 2, 1)
	suite.expectCount("credits", "customer_id", 2, 0)
	suite.expectCount("warranties", "customer_id", 2, 0)

	counts, err := suite.repo.CountDependents(suite.context, models.EntityCustomer, 2)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]int64{"sales_invoices": 1}, counts)
}

func (suite *CascadeRepoTestSuite) TestForceDeletePart_RemovesEveryDependentThenPart() {
	for _, step := range forceDeleteSteps[models.EntityPart] {
		suite.mock.ExpectExec(regexp.QuoteMeta(step.sql)).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
	}

	affected, err := suite.repo.ForceDelete(suite.context, models.EntityPart, 1)
	require.NoError(suite.T(), err)
	for _, table := range []string{"inventory_ledger", "low_stock_alerts", "purchase_order_items", "sales_invoice_items", "credit_items", "warranty_items", "parts"} {
		assert.Contains(suite.T(), affected, table)
	}
}

func (suite *CascadeRepoTestSuite) TestForceDeleteSupplier_DetachesParts() {
	suite.mock.ExpectExec(`DELETE FROM purchase_order_items WHERE purchase_order_id IN`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	suite.mock.ExpectExec(`DELETE FROM purchase_orders WHERE supplier_id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(`UPDATE parts SET supplier_id = NULL`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 6))
	suite.mock.ExpectExec(`DELETE FROM suppliers WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	affected, err := suite.repo.ForceDelete(suite.context, models.EntitySupplier, 9)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(6), affected["parts"])
	assert.Equal(suite.T(), int64(2), affected["purchase_orders"])
}

func (suite *CascadeRepoTestSuite) TestForceDelete_StopsAtFailingStep() {
	suite.mock.ExpectExec(`DELETE FROM sales_invoice_items`).
		WithArgs(int64(2)).
		WillReturnError(errors.New("deadlock detected"))

	_, err := suite.repo.ForceDelete(suite.context, models.EntityCustomer, 2)
	assert.ErrorContains(suite.T(), err, "sales_invoice_items")
}

func (suite *CascadeRepoTestSuite) TestForceDelete_LineCodeUnsupported() {
	_, err := suite.repo.ForceDelete(suite.context, models.EntityLineCode, 4)
	var validation *common.ValidationError
	assert.True(suite.T(), errors.As(err, &validation))
}

func (suite *CascadeRepoTestSuite) TestDelete_Missing() {
	suite.mock.ExpectExec(`DELETE FROM line_codes WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, models.EntityLineCode, 4)
	var notFound *common.NotFoundError
	assert.True(suite.T(), errors.As(err, &notFound))
}

func (suite *CascadeRepoTestSuite) TestDelete_StillReferenced() {
	suite.mock.ExpectExec(`DELETE FROM line_codes WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "parts_line_code_id_fkey"})

	err := suite.repo.Delete(suite.context, models.EntityLineCode, 4)
	var conflict *common.ReferentialConflictError
	require.True(suite.T(), errors.As(err, &conflict))
	assert.Equal(suite.T(), int64(4), conflict.ID)
}
