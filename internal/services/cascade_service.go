package services

import (
	"context"
	"fmt"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/caching"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/common"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/metrics"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
	"github.com/louis0604/auto-parts-inventory-sub000/internal/repositories"
	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

// CascadeService deletes catalog entities. A plain delete is refused while anything
// references the entity; a forced delete removes or detaches the dependents first.
type CascadeService interface {
	Delete(ctx context.Context, entity models.EntityKind, id int64) error
	ForceDelete(ctx context.Context, entity models.EntityKind, id int64) (*models.ForceDeleteResult, error)
}

type cascadeService struct {
	transactor   repositories.Transactor
	cacheService caching.CacheService
	metrics      *metrics.Metrics
}

func NewCascadeService(transactor repositories.Transactor, cacheService caching.CacheService, m *metrics.Metrics) CascadeService {
	return &cascadeService{
		transactor:   transactor,
		cacheService: cacheService,
		metrics:      m,
	}
}

func (s *cascadeService) Delete(ctx context.Context, entity models.EntityKind, id int64) error {
	err := s.transactor.WithinTx(ctx, func(repos *repositories.Repositories) error {
		if err := mustExist(ctx, repos, entity, id); err != nil {
			return err
		}

		counts, err := repos.Cascade.CountDependents(ctx, entity, id)
		if err != nil {
			return err
		}
		if len(counts) > 0 {
			return &common.ReferentialConflictError{Resource: string(entity), ID: id, Dependents: counts}
		}
		return repos.Cascade.Delete(ctx, entity, id)
	})
	if err != nil {
		return err
	}

	if entity == models.EntityPart {
		if err := s.cacheService.DeletePart(ctx, id); err != nil {
			logger.Warn(ctx).Err(err).Int64("part_id", id).Msg("failed to invalidate part cache")
		}
	}
	return nil
}

func (s *cascadeService) ForceDelete(ctx context.Context, entity models.EntityKind, id int64) (*models.ForceDeleteResult, error) {
	if !entity.Forceable() {
		return nil, common.NewValidationError("force", fmt.Sprintf("%s cannot be force deleted", entity))
	}

	result := &models.ForceDeleteResult{Entity: entity, ID: id}
	err := s.transactor.WithinTx(ctx, func(repos *repositories.Repositories) error {
		if err := mustExist(ctx, repos, entity, id); err != nil {
			return err
		}

		affected, err := repos.Cascade.ForceDelete(ctx, entity, id)
		if err != nil {
			return err
		}
		result.Affected = affected
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, entity, id)
	s.metrics.ForceDeletes.WithLabelValues(string(entity)).Inc()

	logger.Info(ctx).
		Str("entity", string(entity)).
		Int64("id", id).
		Interface("affected", result.Affected).
		Msg("force delete completed")
	return result, nil
}

func (s *cascadeService) invalidate(ctx context.Context, entity models.EntityKind, id int64) {
	var err error
	switch entity {
	case models.EntityPart:
		err = s.cacheService.DeletePart(ctx, id)
	case models.EntitySupplier:
		// Parts of the supplier were detached
		err = s.cacheService.InvalidateParts(ctx)
	}
	if err != nil {
		logger.Warn(ctx).Err(err).Str("entity", string(entity)).Msg("failed to invalidate part cache")
	}

	if entity == models.EntityPart || entity == models.EntityCustomer {
		if err := s.cacheService.InvalidateSalesHistory(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("failed to invalidate sales history cache")
		}
	}
}

func mustExist(ctx context.Context, repos *repositories.Repositories, entity models.EntityKind, id int64) error {
	exists, err := repos.Cascade.Exists(ctx, entity, id)
	if err != nil {
		return err
	}
	if !exists {
		return common.NewNotFoundError(string(entity), id)
	}
	return nil
}
