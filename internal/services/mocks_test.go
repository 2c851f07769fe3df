package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/events"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
)

// fakeTransactor runs the unit of work against mock repositories and records the outcome
type fakeTransactor struct {
	repos     *repositories.Repositories
	calls     int
	committed int
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(repos *repositories.Repositories) error) error {
	t.calls++
	if err := fn(t.repos); err != nil {
		return err
	}
	t.committed++
	return nil
}

type mockRepos struct {
	parts      *MockPartRepository
	suppliers  *MockSupplierRepository
	customers  *MockCustomerRepository
	lineCodes  *MockLineCodeRepository
	categories *MockCategoryRepository
	documents  *MockDocumentRepository
	ledger     *MockLedgerRepository
	alerts     *MockAlertRepository
	cascade    *MockCascadeRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		parts:      new(MockPartRepository),
		suppliers:  new(MockSupplierRepository),
		customers:  new(MockCustomerRepository),
		lineCodes:  new(MockLineCodeRepository),
		categories: new(MockCategoryRepository),
		documents:  new(MockDocumentRepository),
		ledger:     new(MockLedgerRepository),
		alerts:     new(MockAlertRepository),
		cascade:    new(MockCascadeRepository),
	}
}

func (m *mockRepos) repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Parts:      m.parts,
		Suppliers:  m.suppliers,
		Customers:  m.customers,
		LineCodes:  m.lineCodes,
		Categories: m.categories,
		Documents:  m.documents,
		Ledger:     m.ledger,
		Alerts:     m.alerts,
		Cascade:    m.cascade,
	}
}

func (m *mockRepos) assertExpectations(t mock.TestingT) {
	m.parts.AssertExpectations(t)
	m.suppliers.AssertExpectations(t)
	m.customers.AssertExpectations(t)
	m.lineCodes.AssertExpectations(t)
	m.categories.AssertExpectations(t)
	m.documents.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
	m.alerts.AssertExpectations(t)
	m.cascade.AssertExpectations(t)
}

type MockPartRepository struct {
	mock.Mock
}

func (m *MockPartRepository) Create(ctx context.Context, part *models.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *MockPartRepository) GetByID(ctx context.Context, id int64) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartRepository) GetBySKU(ctx context.Context, sku string) (*models.Part, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartRepository) GetForUpdate(ctx context.Context, id int64) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartRepository) Update(ctx context.Context, part *models.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *MockPartRepository) UpdateStock(ctx context.Context, id int64, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockPartRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func (m *MockPartRepository) Search(ctx context.Context, filter *models.PartSearchFilter) ([]*models.Part, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Part), args.Error(1)
}

func (m *MockPartRepository) ListBelowThresholdWithoutAlert(ctx context.Context) ([]*models.Part, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Part), args.Error(1)
}

func (m *MockPartRepository) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int64), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) List(ctx context.Context, query string, limit, offset int) ([]*models.Supplier, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, query string, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]*models.Customer), args.Error(1)
}

type MockLineCodeRepository struct {
	mock.Mock
}

func (m *MockLineCodeRepository) Create(ctx context.Context, lineCode *models.LineCode) error {
	args := m.Called(ctx, lineCode)
	return args.Error(0)
}

func (m *MockLineCodeRepository) GetByID(ctx context.Context, id int64) (*models.LineCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LineCode), args.Error(1)
}

func (m *MockLineCodeRepository) Update(ctx context.Context, lineCode *models.LineCode) error {
	args := m.Called(ctx, lineCode)
	return args.Error(0)
}

func (m *MockLineCodeRepository) List(ctx context.Context, limit, offset int) ([]*models.LineCode, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.LineCode), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.PartCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.PartCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PartCategory), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.PartCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context, limit, offset int) ([]*models.PartCategory, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.PartCategory), args.Error(1)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) NextNumber(ctx context.Context, kind models.DocumentKind, period string) (int, error) {
	args := m.Called(ctx, kind, period)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetForUpdate(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListItems(ctx context.Context, kind models.DocumentKind, documentID int64) ([]models.DocumentItem, error) {
	args := m.Called(ctx, kind, documentID)
	return args.Get(0).([]models.DocumentItem), args.Error(1)
}

func (m *MockDocumentRepository) UpdateStatus(ctx context.Context, kind models.DocumentKind, id int64, status models.DocumentStatus) error {
	args := m.Called(ctx, kind, id, status)
	return args.Error(0)
}

func (m *MockDocumentRepository) List(ctx context.Context, kind models.DocumentKind, filter *models.DocumentFilter) ([]*models.Document, error) {
	args := m.Called(ctx, kind, filter)
	return args.Get(0).([]*models.Document), args.Error(1)
}

func (m *MockDocumentRepository) SalesHistoryBySKU(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SalesHistoryRecord), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Insert(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) List(ctx context.Context, filter *models.LedgerFilter) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) History(ctx context.Context, partID int64) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, partID)
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Raise(ctx context.Context, alert *models.LowStockAlert) (bool, error) {
	args := m.Called(ctx, alert)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id int64) (*models.LowStockAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LowStockAlert), args.Error(1)
}

func (m *MockAlertRepository) Resolve(ctx context.Context, alert *models.LowStockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.LowStockAlert, error) {
	args := m.Called(ctx, unresolvedOnly, limit, offset)
	return args.Get(0).([]*models.LowStockAlert), args.Error(1)
}

type MockCascadeRepository struct {
	mock.Mock
}

func (m *MockCascadeRepository) Exists(ctx context.Context, entity models.EntityKind, id int64) (bool, error) {
	args := m.Called(ctx, entity, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCascadeRepository) CountDependents(ctx context.Context, entity models.EntityKind, id int64) (map[string]int64, error) {
	args := m.Called(ctx, entity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockCascadeRepository) Delete(ctx context.Context, entity models.EntityKind, id int64) error {
	args := m.Called(ctx, entity, id)
	return args.Error(0)
}

func (m *MockCascadeRepository) ForceDelete(ctx context.Context, entity models.EntityKind, id int64) (map[string]int64, error) {
	args := m.Called(ctx, entity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPart(ctx context.Context, partID int64) (*models.Part, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockCacheService) SetPart(ctx context.Context, part *models.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *MockCacheService) DeletePart(ctx context.Context, partID int64) error {
	args := m.Called(ctx, partID)
	return args.Error(0)
}

func (m *MockCacheService) GetSalesHistory(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SalesHistoryRecord), args.Error(1)
}

func (m *MockCacheService) SetSalesHistory(ctx context.Context, sku string, history []models.SalesHistoryRecord) error {
	args := m.Called(ctx, sku, history)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateSalesHistory(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateParts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishStockMoved(ctx context.Context, event events.StockMovedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) PublishLowStock(ctx context.Context, event events.LowStockEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) PublishDocumentCreated(ctx context.Context, event events.DocumentCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
