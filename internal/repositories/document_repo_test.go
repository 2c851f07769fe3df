package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

var (
	documentColumnNames = []string{"id", "number", "counterparty_id", "counterparty_name", "total_amount", "status", "notes",
		"original_invoice_number", "reason", "created_by", "created_by_name", "created_at", "updated_at"}
	itemColumnNames = []string{"id", "document_id", "part_id", "sku", "name", "code", "quantity", "unit_price", "subtotal"}
)

type DocumentRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    DocumentRepository
	context context.Context
}

func (suite *DocumentRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewDocumentRepository(mock)
	suite.context = context.Background()
}

func (suite *DocumentRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestDocumentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentRepoTestSuite))
}

func (suite *DocumentRepoTestSuite) TestNextNumber() {
	suite.mock.ExpectQuery(`INSERT INTO document_sequences .* ON CONFLICT \(kind, period\) DO UPDATE`).
		WithArgs("sales_invoice", "202610").
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(12))

	next, err := suite.repo.NextNumber(suite.context, models.KindSalesInvoice, "202610")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, next)
}

func (suite *DocumentRepoTestSuite) TestCreate_CreditWritesHeaderThenItems() {
	now := time.Now()
	original := "SI-202610-0001"
	reason := "wrong fitment"
	doc := &models.Document{
		Kind:                  models.KindCredit,
		Number:                "CR-202610-0001",
		CounterpartyID:        3,
		TotalAmount:           decimal.RequireFromString("20.00"),
		Status:                models.StatusPending,
		OriginalInvoiceNumber: &original,
		Reason:                &reason,
		Items: []models.DocumentItem{
			{PartID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("20.00"), Subtotal: decimal.RequireFromString("20.00")},
		},
	}

	suite.mock.ExpectQuery(`INSERT INTO credits \(credit_number, customer_id, total_amount, status, notes, created_by, original_invoice_number, reason, created_at, updated_at\)`).
		WithArgs(doc.Number, int64(3), doc.TotalAmount, "pending", doc.Notes, doc.CreatedBy, doc.OriginalInvoiceNumber, doc.Reason).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(40), now, now))
	suite.mock.ExpectQuery(`INSERT INTO credit_items \(credit_id, part_id, quantity, unit_price, subtotal\)`).
		WithArgs(int64(40), int64(1), 1, doc.Items[0].UnitPrice, doc.Items[0].Subtotal).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(400)))

	require.NoError(suite.T(), suite.repo.Create(suite.context, doc))
	assert.Equal(suite.T(), int64(40), doc.ID)
	assert.Equal(suite.T(), int64(400), doc.Items[0].ID)
	assert.Equal(suite.T(), int64(40), doc.Items[0].DocumentID)
}

func (suite *DocumentRepoTestSuite) TestCreate_PurchaseOrderHasNoReasonColumns() {
	now := time.Now()
	doc := &models.Document{
		Kind:           models.KindPurchaseOrder,
		Number:         "PO-202610-0001",
		CounterpartyID: 9,
		TotalAmount:    decimal.Zero,
		Status:         models.StatusPending,
	}

	suite.mock.ExpectQuery(`INSERT INTO purchase_orders \(order_number, supplier_id, total_amount, status, notes, created_by, created_at, updated_at\)`).
		WithArgs(doc.Number, int64(9), doc.TotalAmount, "pending", doc.Notes, doc.CreatedBy).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	require.NoError(suite.T(), suite.repo.Create(suite.context, doc))
}

func (suite *DocumentRepoTestSuite) TestGetForUpdate_LoadsItems() {
	now := time.Now()
	suite.mock.ExpectQuery(`FROM purchase_orders d JOIN suppliers c ON c\.id = d\.supplier_id .* WHERE d\.id = \$1 FOR UPDATE OF d`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(documentColumnNames).
			AddRow(int64(5), "PO-202610-0001", int64(9), "Acme Parts", decimal.RequireFromString("50.00"), "pending", nil, nil, nil, nil, nil, now, now))
	suite.mock.ExpectQuery(`FROM purchase_order_items i JOIN parts p`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(itemColumnNames).
			AddRow(int64(50), int64(5), int64(2), "BP-100", "Brake Pad", nil, 5, decimal.RequireFromString("10.00"), decimal.RequireFromString("50.00")))

	doc, err := suite.repo.GetForUpdate(suite.context, models.KindPurchaseOrder, 5)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusPending, doc.Status)
	assert.Equal(suite.T(), "Acme Parts", doc.CounterpartyName)
	require.Len(suite.T(), doc.Items, 1)
	assert.Equal(suite.T(), "BP-100", doc.Items[0].PartSKU)
	assert.Equal(suite.T(), models.KindPurchaseOrder, doc.Items[0].Kind)
}

func (suite *DocumentRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM warranties d`).
		WithArgs(int64(77)).
		WillReturnRows(pgxmock.NewRows(documentColumnNames))

	_, err := suite.repo.GetByID(suite.context, models.KindWarranty, 77)
	var notFound *common.NotFoundError
	require.True(suite.T(), errors.As(err, &notFound))
	assert.Equal(suite.T(), "warranty", notFound.Resource)
}

func (suite *DocumentRepoTestSuite) TestUpdateStatus() {
	suite.mock.ExpectExec(`UPDATE sales_invoices SET status = \$1`).
		WithArgs("completed", int64(8)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(suite.T(), suite.repo.UpdateStatus(suite.context, models.KindSalesInvoice, 8, models.StatusCompleted))
}

func (suite *DocumentRepoTestSuite) TestUnknownKind() {
	err := suite.repo.UpdateStatus(suite.context, models.DocumentKind("quote"), 1, models.StatusCompleted)
	var validation *common.ValidationError
	assert.True(suite.T(), errors.As(err, &validation))
}

func (suite *DocumentRepoTestSuite) TestSalesHistoryBySKU_UnknownSKUIsEmpty() {
	suite.mock.ExpectQuery(`FROM sales_invoice_items sii`).
		WithArgs("NOPE").
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_number", "created_at", "quantity", "unit_price", "name"}))

	history, err := suite.repo.SalesHistoryBySKU(suite.context, "NOPE")
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), history)
	assert.Len(suite.T(), history, 0)
}

func (suite *DocumentRepoTestSuite) TestSalesHistoryBySKU() {
	invoiceDate := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	suite.mock.ExpectQuery(`WHERE p\.sku = \$1 ORDER BY si\.created_at DESC`).
		WithArgs("BP-100").
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_number", "created_at", "quantity", "unit_price", "name"}).
			AddRow(int64(8), "SI-202610-0008", invoiceDate, 2, decimal.RequireFromString("50.00"), "Joe's Garage"))

	history, err := suite.repo.SalesHistoryBySKU(suite.context, "BP-100")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), history, 1)
	assert.Equal(suite.T(), "SI-202610-0008", history[0].InvoiceNumber)
	assert.Equal(suite.T(), "Joe's Garage", history[0].CustomerName)
	assert.Equal(suite.T(), invoiceDate, history[0].InvoiceDate)
}
