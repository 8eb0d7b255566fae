// Package persistence owns the process-wide Redis connection backing the
// archival queue and the readiness probe.
package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/pkg/util"
)

const dialProbeTimeout = 3 * time.Second

// Redis is the shared connection handle. A dead connection at startup is
// tolerated: the bot starts degraded and deferred deletions queue up once
// the store comes back.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects and probes the archival store once.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialProbeTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("archival store unreachable, deferred deletions will wait",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("archival store connected", zap.String("addr", cfg.Addr))
	}

	return &Redis{Client: client}
}

// Close releases the connection.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Healthy reports whether the archival store is reachable right now.
func (r *Redis) Healthy(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return util.NewResourceError("archival store not configured", nil)
	}
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return util.NewResourceError("archival store unreachable", err)
	}
	return nil
}
