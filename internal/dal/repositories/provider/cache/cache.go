package cacherepo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iproviderrepo"
	redisclient "github.com/pomanager/po-admin/internal/dal/redis"
	"github.com/pomanager/po-admin/internal/service/models/provider"
)

const cacheKey = "po-admin:providers"

// CachedProviderRepository decorates a provider repository with a short-TTL
// Redis cache. Providers are read-only and fetched once per view activation,
// so a stale entry only delays a rename. Any cache error falls through to
// the upstream repository.
type CachedProviderRepository struct {
	next   iproviderrepo.IProviderRepository
	client *redisclient.Client
	ttl    time.Duration
}

func NewCachedProviderRepository(
	next iproviderrepo.IProviderRepository,
	client *redisclient.Client,
	ttl time.Duration,
) *CachedProviderRepository {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}

	return &CachedProviderRepository{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// List returns the cached provider collection, refreshing it from the
// upstream backend on a miss.
func (r *CachedProviderRepository) List(ctx context.Context) ([]provider.Provider, error) {
	raw, err := r.client.RDB().Get(ctx, cacheKey).Bytes()
	if err == nil {
		var providers []provider.Provider
		if err := json.Unmarshal(raw, &providers); err == nil {
			return providers, nil
		}
		slog.Warn("Discarding undecodable provider cache entry")
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Provider cache read failed, falling through", "error", err)
	}

	providers, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(providers); err == nil {
		if err := r.client.RDB().Set(ctx, cacheKey, raw, r.ttl).Err(); err != nil {
			slog.Warn("Provider cache write failed", "error", err)
		}
	}

	return providers, nil
}
