package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/caching"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/events"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/metrics"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

// DocumentService manages purchase orders, sales invoices, credits and warranties.
// Creating a document, its items and its stock movements is one transaction.
type DocumentService interface {
	Create(ctx context.Context, input *models.DocumentInput) (*models.Document, error)
	Get(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error)
	List(ctx context.Context, kind models.DocumentKind, filter *models.DocumentFilter) ([]*models.Document, error)
	Transition(ctx context.Context, kind models.DocumentKind, id int64, action DocumentAction) (*models.Document, error)

	Receive(ctx context.Context, id int64) (*models.Document, error)
	Cancel(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error)
}

type documentService struct {
	repos        *repositories.Repositories
	transactor   repositories.Transactor
	stockService StockService
	cacheService caching.CacheService
	publisher    events.Publisher
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewDocumentService(repos *repositories.Repositories, transactor repositories.Transactor, stockService StockService, cacheService caching.CacheService, publisher events.Publisher, m *metrics.Metrics) DocumentService {
	return &documentService{
		repos:        repos,
		transactor:   transactor,
		stockService: stockService,
		cacheService: cacheService,
		publisher:    publisher,
		metrics:      m,
		now:          time.Now,
	}
}

func validateDocumentInput(input *models.DocumentInput) error {
	if !input.Kind.Valid() {
		return common.NewValidationError("kind", fmt.Sprintf("unknown document kind %q", input.Kind))
	}
	if input.CounterpartyID <= 0 {
		field := "customer_id"
		if input.Kind.CounterpartyIsSupplier() {
			field = "supplier_id"
		}
		return common.NewValidationError(field, "is required")
	}
	if len(input.Items) == 0 {
		return common.NewValidationError("items", "at least one item is required")
	}
	for i, item := range input.Items {
		if item.PartID <= 0 {
			return common.NewValidationError(fmt.Sprintf("items[%d].part_id", i), "is required")
		}
		if item.Quantity <= 0 {
			return common.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		if err := common.CheckQuantity(item.Quantity, fmt.Sprintf("items[%d].quantity", i)); err != nil {
			return err
		}
		if item.UnitPrice.IsNegative() {
			return common.NewValidationError(fmt.Sprintf("items[%d].unit_price", i), "must not be negative")
		}
	}
	return nil
}

func (s *documentService) Create(ctx context.Context, input *models.DocumentInput) (*models.Document, error) {
	if err := validateDocumentInput(input); err != nil {
		return nil, err
	}
	lc, err := lifecycleFor(input.Kind)
	if err != nil {
		return nil, err
	}

	var created *models.Document
	var movements []*models.StockMovement
	err = s.transactor.WithinTx(ctx, func(repos *repositories.Repositories) error {
		if input.Kind.CounterpartyIsSupplier() {
			if _, err := repos.Suppliers.GetByID(ctx, input.CounterpartyID); err != nil {
				return err
			}
		} else if _, err := repos.Customers.GetByID(ctx, input.CounterpartyID); err != nil {
			return err
		}

		doc := &models.Document{
			Kind:                  input.Kind,
			Number:                strings.TrimSpace(input.Number),
			CounterpartyID:        input.CounterpartyID,
			Status:                lc.initial,
			Notes:                 input.Notes,
			OriginalInvoiceNumber: input.OriginalInvoiceNumber,
			Reason:                input.Reason,
			CreatedBy:             common.OperatorFromContext(ctx),
		}

		total := decimal.Zero
		for i, in := range input.Items {
			part, err := repos.Parts.GetByID(ctx, in.PartID)
			if err != nil {
				return err
			}
			if part.IsArchived {
				return common.NewValidationError(fmt.Sprintf("items[%d].part_id", i), fmt.Sprintf("part %s is archived", part.SKU))
			}

			item := models.DocumentItem{
				PartID:    in.PartID,
				Quantity:  in.Quantity,
				UnitPrice: common.RoundMoney(in.UnitPrice),
				Subtotal:  common.LineSubtotal(in.Quantity, in.UnitPrice),
			}
			if _, err := common.CheckMoney(item.Subtotal, fmt.Sprintf("items[%d].subtotal", i)); err != nil {
				return err
			}
			total = total.Add(item.Subtotal)
			doc.Items = append(doc.Items, item)
		}
		totalAmount, err := common.CheckMoney(common.RoundMoney(total), "total_amount")
		if err != nil {
			return err
		}
		doc.TotalAmount = totalAmount

		if doc.Number == "" {
			number, err := s.allocateNumber(ctx, repos, input.Kind)
			if err != nil {
				return err
			}
			doc.Number = number
		}

		if err := repos.Documents.Create(ctx, doc); err != nil {
			return err
		}

		if lc.onCreate.moves() {
			moved, err := s.applyItems(ctx, repos, doc, lc.onCreate)
			if err != nil {
				return err
			}
			movements = moved
		}

		created, err = repos.Documents.GetByID(ctx, doc.Kind, doc.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.stockService.Published(ctx, movements)
	s.published(ctx, created)

	logger.Info(ctx).
		Str("kind", string(created.Kind)).
		Str("number", created.Number).
		Int("items", len(created.Items)).
		Msg("document created")
	return created, nil
}

// allocateNumber returns PREFIX-YYYYMM-NNNN using the per kind monthly sequence
func (s *documentService) allocateNumber(ctx context.Context, repos *repositories.Repositories, kind models.DocumentKind) (string, error) {
	period := s.now().Format("200601")
	next, err := repos.Documents.NextNumber(ctx, kind, period)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", kind.NumberPrefix(), period, next), nil
}

// applyItems moves stock for every item, locking parts in ascending id order
// so concurrent documents over the same parts take their row locks alike.
func (s *documentService) applyItems(ctx context.Context, repos *repositories.Repositories, doc *models.Document, effect stockEffect) ([]*models.StockMovement, error) {
	items := make([]models.DocumentItem, len(doc.Items))
	copy(items, doc.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].PartID < items[j].PartID })

	movements := make([]*models.StockMovement, 0, len(items))
	for _, item := range items {
		movement, err := s.stockService.Apply(ctx, repos, models.StockMutation{
			PartID:          item.PartID,
			Mode:            models.StockDelta,
			Quantity:        effect.sign * item.Quantity,
			TransactionType: effect.transactionType,
			Reference:       models.DocumentReference(doc.Kind, doc.ID),
			OperatedBy:      common.OperatorFromContext(ctx),
		})
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, nil
}

func (s *documentService) published(ctx context.Context, doc *models.Document) {
	s.metrics.DocumentsCreated.WithLabelValues(string(doc.Kind)).Inc()

	if doc.Kind == models.KindSalesInvoice {
		if err := s.cacheService.InvalidateSalesHistory(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("failed to invalidate sales history cache")
		}
	}

	err := s.publisher.PublishDocumentCreated(ctx, events.DocumentCreatedEvent{
		Kind:           string(doc.Kind),
		DocumentID:     doc.ID,
		Number:         doc.Number,
		Status:         string(doc.Status),
		CounterpartyID: doc.CounterpartyID,
		TotalAmount:    doc.TotalAmount,
	})
	if err != nil {
		logger.Warn(ctx).Err(err).Str("number", doc.Number).Msg("failed to publish document event")
	}
}

func (s *documentService) Get(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	if !kind.Valid() {
		return nil, common.NewValidationError("kind", fmt.Sprintf("unknown document kind %q", kind))
	}
	return s.repos.Documents.GetByID(ctx, kind, id)
}

func (s *documentService) List(ctx context.Context, kind models.DocumentKind, filter *models.DocumentFilter) ([]*models.Document, error) {
	if !kind.Valid() {
		return nil, common.NewValidationError("kind", fmt.Sprintf("unknown document kind %q", kind))
	}
	if filter == nil {
		filter = &models.DocumentFilter{}
	}
	return s.repos.Documents.List(ctx, kind, filter)
}

// Transition moves a document along its lifecycle, applying the stock effect of the
// transition in the same transaction as the status change
func (s *documentService) Transition(ctx context.Context, kind models.DocumentKind, id int64, action DocumentAction) (*models.Document, error) {
	lc, err := lifecycleFor(kind)
	if err != nil {
		return nil, err
	}
	t, err := lc.transition(kind, action)
	if err != nil {
		return nil, err
	}

	var doc *models.Document
	var movements []*models.StockMovement
	var previous models.DocumentStatus
	err = s.transactor.WithinTx(ctx, func(repos *repositories.Repositories) error {
		var err error
		doc, err = repos.Documents.GetForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if !t.allows(doc.Status) {
			return &common.InvalidStateError{Resource: kind.Label(), ID: id, Status: string(doc.Status), Action: string(action)}
		}

		if t.effect.moves() {
			movements, err = s.applyItems(ctx, repos, doc, t.effect)
			if err != nil {
				return err
			}
		}

		if err := repos.Documents.UpdateStatus(ctx, kind, id, t.to); err != nil {
			return err
		}
		previous = doc.Status
		doc.Status = t.to
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stockService.Published(ctx, movements)
	s.metrics.DocumentStatus.WithLabelValues(string(kind), string(t.to)).Inc()

	if action == ActionCancel && lc.movedStock(previous) {
		logger.Warn(ctx).
			Str("kind", string(kind)).
			Str("number", doc.Number).
			Str("previous_status", string(previous)).
			Msg("document cancelled; stock movements already applied are not reversed")
	}
	return doc, nil
}

func (s *documentService) Receive(ctx context.Context, id int64) (*models.Document, error) {
	return s.Transition(ctx, models.KindPurchaseOrder, id, ActionReceive)
}

func (s *documentService) Cancel(ctx context.Context, kind models.DocumentKind, id int64) (*models.Document, error) {
	return s.Transition(ctx, kind, id, ActionCancel)
}
