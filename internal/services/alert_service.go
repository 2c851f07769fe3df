package services

import (
	"context"
	"errors"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/events"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/metrics"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

// AlertService manages low-stock alerts. A part has at most one unresolved alert;
// raising again refreshes it. Alerts are only resolved by an operator.
type AlertService interface {
	Raise(ctx context.Context, repos *repositories.Repositories, part *models.Part) (*models.LowStockAlert, bool, error)
	Resolve(ctx context.Context, id int64) (*models.LowStockAlert, error)
	List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.LowStockAlert, error)
	Sweep(ctx context.Context) (int, error)
	Published(ctx context.Context, alert *models.LowStockAlert, created bool)
}

type alertService struct {
	repos     *repositories.Repositories
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewAlertService(repos *repositories.Repositories, publisher events.Publisher, m *metrics.Metrics) AlertService {
	return &alertService{
		repos:     repos,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *alertService) Raise(ctx context.Context, repos *repositories.Repositories, part *models.Part) (*models.LowStockAlert, bool, error) {
	alert := &models.LowStockAlert{
		PartID:       part.ID,
		PartSKU:      part.SKU,
		PartName:     part.Name,
		CurrentStock: part.StockQuantity,
		MinThreshold: part.MinStockThreshold,
	}
	created, err := repos.Alerts.Raise(ctx, alert)
	if err != nil {
		return nil, false, err
	}
	return alert, created, nil
}

func (s *alertService) Resolve(ctx context.Context, id int64) (*models.LowStockAlert, error) {
	alert, err := s.repos.Alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.IsResolved {
		return nil, &common.InvalidStateError{Resource: "low stock alert", ID: id, Status: "resolved", Action: "resolve"}
	}

	if err := s.repos.Alerts.Resolve(ctx, alert); err != nil {
		// Another request resolved it between the read and the update
		var notFound *common.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &common.InvalidStateError{Resource: "low stock alert", ID: id, Status: "resolved", Action: "resolve"}
		}
		return nil, err
	}

	s.metrics.AlertsResolved.Inc()
	return alert, nil
}

func (s *alertService) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.LowStockAlert, error) {
	return s.repos.Alerts.List(ctx, unresolvedOnly, limit, offset)
}

// Sweep raises alerts for parts under threshold that have no open alert, such as parts
// whose threshold was raised without a stock movement. It returns the number raised.
func (s *alertService) Sweep(ctx context.Context) (int, error) {
	parts, err := s.repos.Parts.ListBelowThresholdWithoutAlert(ctx)
	if err != nil {
		return 0, err
	}

	raised := 0
	for _, part := range parts {
		alert, created, err := s.Raise(ctx, s.repos, part)
		if err != nil {
			logger.Error(ctx).Err(err).Int64("part_id", part.ID).Msg("failed to raise low stock alert")
			continue
		}
		s.Published(ctx, alert, created)
		if created {
			raised++
		}
	}
	return raised, nil
}

func (s *alertService) Published(ctx context.Context, alert *models.LowStockAlert, created bool) {
	if created {
		s.metrics.AlertsRaised.Inc()
	}

	err := s.publisher.PublishLowStock(ctx, events.LowStockEvent{
		AlertID:      alert.ID,
		PartID:       alert.PartID,
		SKU:          alert.PartSKU,
		CurrentStock: alert.CurrentStock,
		MinThreshold: alert.MinThreshold,
	})
	if err != nil {
		logger.Warn(ctx).Err(err).Int64("part_id", alert.PartID).Msg("failed to publish low stock alert")
	}
}
