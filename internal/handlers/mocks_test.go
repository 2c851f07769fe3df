package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/services"
)

type MockPartService struct {
	mock.Mock
}

func (m *MockPartService) Create(ctx context.Context, part *models.Part) error {
	return m.Called(ctx, part).Error(0)
}

func (m *MockPartService) GetByID(ctx context.Context, id int64) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartService) GetBySKU(ctx context.Context, sku string) (*models.Part, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartService) Update(ctx context.Context, part *models.Part) error {
	return m.Called(ctx, part).Error(0)
}

func (m *MockPartService) Archive(ctx context.Context, id int64) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartService) Restore(ctx context.Context, id int64) (*models.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Part), args.Error(1)
}

func (m *MockPartService) Search(ctx context.Context, filter *models.PartSearchFilter) ([]*models.Part, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Part), args.Error(1)
}

type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) Apply(ctx context.Context, repos *repositories.Repositories, mutation models.StockMutation) (*models.StockMovement, error) {
	args := m.Called(ctx, repos, mutation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockMovement), args.Error(1)
}

func (m *MockStockService) Adjust(ctx context.Context, partID int64, mode models.StockMode, quantity int, notes *string) (*models.StockMovement, error) {
	args := m.Called(ctx, partID, mode, quantity, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockMovement), args.Error(1)
}

func (m *MockStockService) Published(ctx context.Context, movements []*models.StockMovement) {
	m.Called(ctx, movements)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) List(ctx context.Context, filter *models.LedgerFilter) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) History(ctx context.Context, partID int64) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Verify(ctx context.Context, partID int64) (*models.LedgerVerification, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerVerification), args.Error(1)
}

func (m *MockLedgerService) VerifyAll(ctx context.Context) ([]*models.LedgerVerification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerVerification), args.Error(1)
}

type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) Raise(ctx context.Context, repos *repositories.Repositories, part *models.Part) (*models.LowStockAlert, bool, error) {
	args := m.Called(ctx, repos, part)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.LowStockAlert), args.Bool(1), args.Error(2)
}

func (m *MockAlertService) Resolve(ctx context.Context, id int64) (*models.LowStockAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LowStockAlert), args.Error(1)
}

func (m *MockAlertService) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.LowStockAlert, error) {
	args := m.Called(ctx, unresolvedOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LowStockAlert), args.Error(1)
}

func (m *MockAlertService) Sweep(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAlertService) Published(ctx context.Context, alert *models.LowStockAlert, created bool) {
	m.Called(ctx, alert, created)
}

type MockSalesHistoryService struct {
	mock.Mock
}

func (m *MockSalesHistoryService) BySKU(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SalesHistoryRecord), args.Error(1)
}

type MockCascadeService struct {
	mock.Mock
}

func (m *MockCascadeService) Delete(ctx context.Context, entity models.EntityKind, id int64) error {
	return m.Called(ctx, entity, id).Error(0)
}

func (m *MockCascadeService) ForceDelete(ctx context.Context, entity models.EntityKind, id int64) (*models.ForceDeleteResult, error) {
	args := m.Called(ctx, entity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForceDeleteResult), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, input *models.DocumentInput) (*models.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, kind models.DocumentKind, filter *models.DocumentFilter) ([]*models.Document, error) {
	args := m.Called(ctx, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Document), args.Error(1)
}

func (m *MockDocumentService) Transition(ctx context.Context, kind models.DocumentKind, id int64, action services.DocumentAction) (*models.Document, error) {
	args := m.Called(ctx, kind, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) Receive(ctx context.Context, id int64) (*models.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentService) Cancel(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

type MockSupplierService struct {
	mock.Mock
}

func (m *MockSupplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierService) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *MockSupplierService) List(ctx context.Context, query string, limit, offset int) ([]*models.Supplier, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
