package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/louis0604/auto-parts-inventory-sub000/internal/models"
)

const keyPrefix = "autoparts"

type CacheService interface {
	// Part snapshots
	GetPart(ctx context.Context, partID int64) (*models.Part, error)
	SetPart(ctx context.Context, part *models.Part) error
	DeletePart(ctx context.Context, partID int64) error

	// Sales history per SKU
	GetSalesHistory(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error)
	SetSalesHistory(ctx context.Context, sku string, history []models.SalesHistoryRecord) error
	InvalidateSalesHistory(ctx context.Context) error

	// Cache invalidation
	InvalidateParts(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCacheService(addr, password string, db int, ttl time.Duration) CacheService {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Warn().Err(pingErr).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	} else {
		log.Debug().Str("addr", parsedAddr).Msg("redis connection established")
	}

	return &redisCacheService{client: client, ttl: ttl}
}

func PartKey(partID int64) string {
	return fmt.Sprintf("%s:part:%d", keyPrefix, partID)
}

func SalesHistoryKey(sku string) string {
	return fmt.Sprintf("%s:sales-history:%s", keyPrefix, strings.TrimSpace(sku))
}

func (r *redisCacheService) GetPart(ctx context.Context, partID int64) (*models.Part, error) {
	data, err := r.client.Get(ctx, PartKey(partID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var part models.Part
	if err := json.Unmarshal(data, &part); err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *redisCacheService) SetPart(ctx context.Context, part *models.Part) error {
	data, err := json.Marshal(part)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, PartKey(part.ID), data, r.ttl).Err()
}

func (r *redisCacheService) DeletePart(ctx context.Context, partID int64) error {
	return r.client.Del(ctx, PartKey(partID)).Err()
}

func (r *redisCacheService) GetSalesHistory(ctx context.Context, sku string) ([]models.SalesHistoryRecord, error) {
	data, err := r.client.Get(ctx, SalesHistoryKey(sku)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	history := []models.SalesHistoryRecord{}
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *redisCacheService) SetSalesHistory(ctx context.Context, sku string, history []models.SalesHistoryRecord) error {
	if history == nil {
		history = []models.SalesHistoryRecord{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, SalesHistoryKey(sku), data, r.ttl).Err()
}

func (r *redisCacheService) InvalidateSalesHistory(ctx context.Context) error {
	return r.deletePattern(ctx, keyPrefix+":sales-history:*")
}

func (r *redisCacheService) InvalidateParts(ctx context.Context) error {
	return r.deletePattern(ctx, keyPrefix+":part:*")
}

func (r *redisCacheService) deletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// noopCacheService is used when no redis address is configured
type noopCacheService struct{}

func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) GetPart(context.Context, int64) (*models.Part, error) { return nil, nil }
func (noopCacheService) SetPart(context.Context, *models.Part) error          { return nil }
func (noopCacheService) DeletePart(context.Context, int64) error              { return nil }
func (noopCacheService) GetSalesHistory(context.Context, string) ([]models.SalesHistoryRecord, error) {
	return nil, nil
}
func (noopCacheService) SetSalesHistory(context.Context, string, []models.SalesHistoryRecord) error {
	return nil
}
func (noopCacheService) InvalidateSalesHistory(context.Context) error { return nil }
func (noopCacheService) InvalidateParts(context.Context) error        { return nil }
func (noopCacheService) Ping(context.Context) error                   { return nil }
