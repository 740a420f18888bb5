// Package revocation provides the token denylist backing logout.
package revocation

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const revokedKeyPrefix = "revoked:"

// redisRevocationStore implements TokenRevocationStore on Redis. Entries
// carry a TTL matching the revoked token's remaining lifetime, so the
// denylist cleans itself up.
type redisRevocationStore struct {
	client *redis.Client
}

// Params holds dependencies for the revocation store, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates a TokenRevocationStore. With Redis configured the denylist
// survives restarts and is shared between instances; without it an
// in-memory store is used.
func New(params Params) (service.TokenRevocationStore, error) {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, using in-memory revocation store")

		return NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	params.Logger.Info("Using Redis revocation store",
		slog.String("addr", cfg.Addr),
	)

	return &redisRevocationStore{client: client}, nil
}

// Revoke marks a token ID as revoked for the given ttl.
func (s *redisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past expiry, nothing to deny.
		return nil
	}

	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}

	return nil
}

// IsRevoked reports whether a token ID has been revoked.
func (s *redisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check token revocation")
	}

	return n > 0, nil
}
