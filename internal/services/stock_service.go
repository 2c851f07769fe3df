package services

import (
	"context"
	"fmt"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/caching"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/events"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/metrics"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

// StockService is the only writer of parts.stock_quantity. Every change it makes is
// paired with one ledger entry in the same transaction.
type StockService interface {
	// Apply mutates one part inside the caller's transaction
	Apply(ctx context.Context, repos *repositories.Repositories, mutation models.StockMutation) (*models.StockMovement, error)
	// Adjust runs a manual adjustment in its own transaction
	Adjust(ctx context.Context, partID int64, mode models.StockMode, quantity int, notes *string) (*models.StockMovement, error)
	// Published runs the side effects of movements that have been committed
	Published(ctx context.Context, movements []*models.StockMovement)
}

type stockService struct {
	transactor   repositories.Transactor
	alertService AlertService
	cacheService caching.CacheService
	publisher    events.Publisher
	metrics      *metrics.Metrics
}

func NewStockService(transactor repositories.Transactor, alertService AlertService, cacheService caching.CacheService, publisher events.Publisher, m *metrics.Metrics) StockService {
	return &stockService{
		transactor:   transactor,
		alertService: alertService,
		cacheService: cacheService,
		publisher:    publisher,
		metrics:      m,
	}
}

func (s *stockService) Apply(ctx context.Context, repos *repositories.Repositories, mutation models.StockMutation) (*models.StockMovement, error) {
	if !mutation.TransactionType.Valid() {
		return nil, common.NewValidationError("transaction_type", fmt.Sprintf("unknown transaction type %q", mutation.TransactionType))
	}
	if !mutation.Reference.Type.Valid() {
		return nil, common.NewValidationError("reference_type", fmt.Sprintf("unknown reference type %q", mutation.Reference.Type))
	}
	if mutation.Reference.Type.RequiresID() && mutation.Reference.ID == nil {
		return nil, common.NewValidationError("reference_id", fmt.Sprintf("%s references need an id", mutation.Reference.Type))
	}
	if mutation.Mode == models.StockDelta && mutation.Quantity == 0 {
		return nil, common.NewValidationError("quantity", "must not be zero")
	}
	if mutation.Mode == models.StockAbsolute && mutation.Quantity < 0 {
		return nil, common.NewValidationError("quantity", "must not be negative")
	}
	if err := common.CheckQuantity(mutation.Quantity, "quantity"); err != nil {
		return nil, err
	}

	part, err := repos.Parts.GetForUpdate(ctx, mutation.PartID)
	if err != nil {
		return nil, err
	}

	previous := part.StockQuantity
	newBalance := previous + mutation.Quantity
	if mutation.Mode == models.StockAbsolute {
		newBalance = mutation.Quantity
	}
	if newBalance < 0 {
		return nil, &common.InsufficientStockError{
			PartID:    part.ID,
			SKU:       part.SKU,
			Available: previous,
			Requested: -mutation.Quantity,
		}
	}
	if newBalance > common.MaxQuantity {
		return nil, common.NewValidationError("quantity", fmt.Sprintf("stock of part %s would exceed %d", part.SKU, common.MaxQuantity))
	}

	if err := repos.Parts.UpdateStock(ctx, part.ID, newBalance); err != nil {
		return nil, fmt.Errorf("update stock for part %d: %w", part.ID, err)
	}

	entry := &models.LedgerEntry{
		PartID:          part.ID,
		TransactionType: mutation.TransactionType,
		Quantity:        newBalance - previous,
		BalanceAfter:    newBalance,
		Reference:       mutation.Reference,
		Notes:           mutation.Notes,
		OperatedBy:      mutation.OperatedBy,
	}
	if err := repos.Ledger.Insert(ctx, entry); err != nil {
		return nil, err
	}

	movement := &models.StockMovement{
		PartID:          part.ID,
		SKU:             part.SKU,
		PreviousBalance: previous,
		NewBalance:      newBalance,
		Delta:           entry.Quantity,
		TransactionType: mutation.TransactionType,
		Reference:       mutation.Reference,
		LedgerEntryID:   entry.ID,
	}

	part.StockQuantity = newBalance
	if part.IsLowStock() {
		alert, created, err := s.alertService.Raise(ctx, repos, part)
		if err != nil {
			return nil, err
		}
		movement.Alert = alert
		movement.AlertCreated = created
	}
	return movement, nil
}

func (s *stockService) Adjust(ctx context.Context, partID int64, mode models.StockMode, quantity int, notes *string) (*models.StockMovement, error) {
	mutation := models.StockMutation{
		PartID:     partID,
		Mode:       mode,
		Quantity:   quantity,
		Reference:  models.Reference{Type: models.ReferenceManual},
		Notes:      notes,
		OperatedBy: common.OperatorFromContext(ctx),
	}
	switch {
	case mode == models.StockAbsolute:
		mutation.TransactionType = models.TransactionAdjustment
	case quantity > 0:
		mutation.TransactionType = models.TransactionIn
	case quantity < 0:
		mutation.TransactionType = models.TransactionOut
	default:
		return nil, common.NewValidationError("quantity", "must not be zero")
	}

	var movement *models.StockMovement
	err := s.transactor.WithinTx(ctx, func(repos *repositories.Repositories) error {
		var err error
		movement, err = s.Apply(ctx, repos, mutation)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Published(ctx, []*models.StockMovement{movement})
	return movement, nil
}

// Published never fails; cache and broker errors are logged
func (s *stockService) Published(ctx context.Context, movements []*models.StockMovement) {
	for _, movement := range movements {
		if err := s.cacheService.DeletePart(ctx, movement.PartID); err != nil {
			logger.Warn(ctx).Err(err).Int64("part_id", movement.PartID).Msg("failed to invalidate part cache")
		}

		s.metrics.StockMovements.WithLabelValues(string(movement.TransactionType), string(movement.Reference.Type)).Inc()
		if movement.Delta >= 0 {
			s.metrics.StockUnits.WithLabelValues("in").Add(float64(movement.Delta))
		} else {
			s.metrics.StockUnits.WithLabelValues("out").Add(float64(-movement.Delta))
		}

		err := s.publisher.PublishStockMoved(ctx, events.StockMovedEvent{
			PartID:          movement.PartID,
			SKU:             movement.SKU,
			Delta:           movement.Delta,
			BalanceAfter:    movement.NewBalance,
			TransactionType: string(movement.TransactionType),
			ReferenceType:   string(movement.Reference.Type),
			ReferenceID:     movement.Reference.ID,
			LedgerEntryID:   movement.LedgerEntryID,
		})
		if err != nil {
			logger.Warn(ctx).Err(err).Int64("part_id", movement.PartID).Msg("failed to publish stock movement")
		}

		if movement.Alert != nil {
			s.alertService.Published(ctx, movement.Alert, movement.AlertCreated)
		}
	}
}
