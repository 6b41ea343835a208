package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Locker guards one runner tick. Acquire reports false when another holder
// owns key; release is a no-op in that case.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// RedisLocker coordinates runners across replicas with SET NX PX.
type RedisLocker struct {
	rdb    redis.UniversalClient
	prefix string
	log    *zap.Logger
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisLocker(rdb redis.UniversalClient, prefix string, log *zap.Logger) *RedisLocker {
	if prefix == "" {
		prefix = "ledger:lock"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLocker{rdb: rdb, prefix: prefix, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	full := l.prefix + ":" + key
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return func() {}, false, err
	}
	if !ok {
		return func() {}, false, nil
	}

	release := func() {
		// The tick's context may already be done; release on a fresh one.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.rdb, []string{full}, token).Err(); err != nil {
			// Ticks are skipped until the key expires on its own.
			l.log.Warn("release runner lock", zap.String("key", full), zap.Duration("ttl", ttl), zap.Error(err))
		}
	}
	return release, true, nil
}

// LocalLocker serializes runners inside one process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]time.Time)}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if exp, ok := l.held[key]; ok && now.Before(exp) {
		return func() {}, false, nil
	}
	exp := now.Add(ttl)
	l.held[key] = exp

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].Equal(exp) {
			delete(l.held, key)
		}
	}, true, nil
}
