package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kindredapp/kindred-backend/internal/logger"
)

// PipelineLock serializes vectorization per user across processes. The
// pipeline itself does no internal locking; this is the trigger-layer
// guarantee of at most one in-flight run per user identity.
type PipelineLock interface {
	Acquire(ctx context.Context, userID uuid.UUID) (release func(), acquired bool, err error)
	Close() error
}

type redisPipelineLock struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// Compare-and-delete so a run that outlived its TTL cannot release a lock
// that now belongs to a newer run.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

func NewRedisPipelineLock(log *logger.Logger) (PipelineLock, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisPipelineLock{
		log: log.With("service", "RedisPipelineLock"),
		rdb: rdb,
		ttl: 60 * time.Second,
	}, nil
}

func (l *redisPipelineLock) Acquire(ctx context.Context, userID uuid.UUID) (func(), bool, error) {
	key := "vectorize:lock:" + userID.String()
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.rdb, []string{key}, token).Err(); err != nil {
			l.log.Warn("Failed to release pipeline lock (will expire via TTL)", "key", key, "error", err)
		}
	}
	return release, true, nil
}

func (l *redisPipelineLock) Close() error {
	return l.rdb.Close()
}
