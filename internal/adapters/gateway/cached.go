package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

var _ domain.Gateway = (*CachedGateway)(nil)

// CachedGateway is a read-through Redis cache in front of another gateway.
// Writes bump a per-table version so every cached query of that table goes stale
// at once. Redis failures never fail a call; they only bypass the cache.
type CachedGateway struct {
	next  domain.Gateway
	cache *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedGateway(next domain.Gateway, cache *redis.Client, ttl time.Duration, log *slog.Logger) *CachedGateway {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &CachedGateway{next: next, cache: cache, ttl: ttl, log: log}
}

func versionKey(table string) string {
	return fmt.Sprintf("gateway:version:%s", table)
}

func (g *CachedGateway) queryKey(ctx context.Context, table string, filter domain.Filter) (string, bool) {
	version, err := g.cache.Get(ctx, versionKey(table)).Int64()
	if err != nil && err != redis.Nil {
		g.log.Warn("cache version read failed", "table", table, "error", err)
		return "", false
	}

	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("gateway:query:%s:v%d:%s", table, version, filterJSON), true
}

func (g *CachedGateway) Query(ctx context.Context, table string, filter domain.Filter) ([]domain.Row, error) {
	key, ok := g.queryKey(ctx, table, filter)
	if ok {
		val, err := g.cache.Get(ctx, key).Result()
		if err == nil {
			var rows []domain.Row
			if err := json.Unmarshal([]byte(val), &rows); err == nil {
				return rows, nil
			}
			g.log.Warn("corrupted cache entry, cleaning up", "key", key)
			g.cache.Del(ctx, key)
		} else if err != redis.Nil {
			g.log.Warn("cache read failed", "error", err)
		}
	}

	rows, err := g.next.Query(ctx, table, filter)
	if err != nil {
		return nil, err
	}

	if ok {
		if data, err := json.Marshal(rows); err == nil {
			if setErr := g.cache.Set(ctx, key, data, g.ttl).Err(); setErr != nil {
				g.log.Warn("cache write failed", "error", setErr)
			}
		}
	}
	return rows, nil
}

func (g *CachedGateway) Insert(ctx context.Context, table string, row domain.Row) (domain.Row, error) {
	out, err := g.next.Insert(ctx, table, row)
	if err == nil {
		g.invalidate(ctx, table)
	}
	return out, err
}

func (g *CachedGateway) Update(ctx context.Context, table string, filter domain.Filter, partial domain.Row) (domain.Row, error) {
	out, err := g.next.Update(ctx, table, filter, partial)
	if err == nil {
		g.invalidate(ctx, table)
	}
	return out, err
}

func (g *CachedGateway) Delete(ctx context.Context, table string, filter domain.Filter) error {
	err := g.next.Delete(ctx, table, filter)
	if err == nil {
		g.invalidate(ctx, table)
	}
	return err
}

func (g *CachedGateway) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}

func (g *CachedGateway) invalidate(ctx context.Context, table string) {
	if err := g.cache.Incr(ctx, versionKey(table)).Err(); err != nil {
		g.log.Warn("cache invalidation failed", "table", table, "error", err)
	}
}
