package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gatherly/internal/domain"
)

const (
	defaultTTL          = 30 * time.Second
	defaultPollInterval = 25 * time.Millisecond
	keyPrefix           = "gatherly:lock:gathering:"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConfig holds configuration for the redis backed locker.
type RedisConfig struct {
	TTL          time.Duration
	PollInterval time.Duration
}

type redisLocker struct {
	rdb          redis.UniversalClient
	ttl          time.Duration
	pollInterval time.Duration
	log          *slog.Logger
}

// NewRedisLocker returns a GatheringLocker shared by every process using rdb. A holder
// that dies keeps the lock until TTL elapses.
func NewRedisLocker(rdb redis.UniversalClient, cfg RedisConfig, log *slog.Logger) domain.GatheringLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &redisLocker{
		rdb:          rdb,
		ttl:          cfg.TTL,
		pollInterval: cfg.PollInterval,
		log:          log.With("component", "RedisLocker"),
	}
}

func (l *redisLocker) Lock(ctx context.Context, gatheringID string) (func(), error) {
	key := keyPrefix + gatheringID
	token := uuid.NewString()

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis setnx %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
				l.log.Warn("release lock failed", "key", key, "err", err)
			}
		})
	}, nil
}
