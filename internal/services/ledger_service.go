package services

import (
	"context"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/metrics"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

type LedgerService interface {
	List(ctx context.Context, filter *models.LedgerFilter) ([]*models.LedgerEntry, error)
	History(ctx context.Context, partID int64) ([]*models.LedgerEntry, error)
	Verify(ctx context.Context, partID int64) (*models.LedgerVerification, error)
	VerifyAll(ctx context.Context) ([]*models.LedgerVerification, error)
}

type ledgerService struct {
	repos   *repositories.Repositories
	metrics *metrics.Metrics
}

func NewLedgerService(repos *repositories.Repositories, m *metrics.Metrics) LedgerService {
	return &ledgerService{repos: repos, metrics: m}
}

func (s *ledgerService) List(ctx context.Context, filter *models.LedgerFilter) ([]*models.LedgerEntry, error) {
	return s.repos.Ledger.List(ctx, filter)
}

func (s *ledgerService) History(ctx context.Context, partID int64) ([]*models.LedgerEntry, error) {
	if _, err := s.repos.Parts.GetByID(ctx, partID); err != nil {
		return nil, err
	}
	return s.repos.Ledger.History(ctx, partID)
}

// Verify replays a part's ledger. Each balance_after must equal the running sum of
// quantities and the final sum must equal the part's stock_quantity.
func (s *ledgerService) Verify(ctx context.Context, partID int64) (*models.LedgerVerification, error) {
	part, err := s.repos.Parts.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repos.Ledger.History(ctx, partID)
	if err != nil {
		return nil, err
	}
	return replayLedger(part, entries), nil
}

func replayLedger(part *models.Part, entries []*models.LedgerEntry) *models.LedgerVerification {
	result := &models.LedgerVerification{
		PartID:        part.ID,
		Entries:       len(entries),
		StockQuantity: part.StockQuantity,
	}

	balance := 0
	for _, entry := range entries {
		balance += entry.Quantity
		if entry.BalanceAfter != balance && result.FirstMismatchID == nil {
			id := entry.ID
			result.FirstMismatchID = &id
		}
	}
	result.ReplayedBalance = balance
	result.Consistent = result.FirstMismatchID == nil && balance == part.StockQuantity
	return result
}

// VerifyAll checks every part and returns only the inconsistent ones
func (s *ledgerService) VerifyAll(ctx context.Context) ([]*models.LedgerVerification, error) {
	ids, err := s.repos.Parts.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	mismatches := []*models.LedgerVerification{}
	for _, id := range ids {
		result, err := s.Verify(ctx, id)
		if err != nil {
			logger.Error(ctx).Err(err).Int64("part_id", id).Msg("ledger verification failed")
			continue
		}
		if !result.Consistent {
			s.metrics.LedgerMismatches.Inc()
			logger.Warn(ctx).
				Int64("part_id", id).
				Int("stock_quantity", result.StockQuantity).
				Int("replayed_balance", result.ReplayedBalance).
				Msg("ledger does not match stock")
			mismatches = append(mismatches, result)
		}
	}
	return mismatches, nil
}
