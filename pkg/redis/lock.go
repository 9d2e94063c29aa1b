package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another holder owns the key.
var ErrLockHeld = errors.New("lock is held by another request")

// releaseScript deletes the key only when it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// KeyedLocker hands out short-lived per-key locks backed by SET NX.
type KeyedLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Lock is a held lock. Release is safe to call more than once.
type Lock struct {
	locker *KeyedLocker
	key    string
	token  string
}

// NewKeyedLocker creates a locker. A nil client falls back to the package client.
func NewKeyedLocker(c *redis.Client, prefix string, ttl time.Duration) *KeyedLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &KeyedLocker{client: c, prefix: prefix, ttl: ttl}
}

func (l *KeyedLocker) redisClient() *redis.Client {
	if l.client != nil {
		return l.client
	}
	return client
}

// Acquire takes the lock for key or returns ErrLockHeld.
func (l *KeyedLocker) Acquire(ctx context.Context, key string) (*Lock, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.redisClient().SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return &Lock{locker: l, key: fullKey, token: token}, nil
}

// Release frees the lock if it is still ours.
func (lk *Lock) Release(ctx context.Context) error {
	if lk == nil {
		return nil
	}
	return releaseScript.Run(ctx, lk.locker.redisClient(), []string{lk.key}, lk.token).Err()
}

// WithLock runs fn while holding the lock for key.
func (l *KeyedLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lk, err := l.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer func() { _ = lk.Release(context.WithoutCancel(ctx)) }()
	return fn(ctx)
}
