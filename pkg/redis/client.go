package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotInitialized is returned by package helpers before Init or SetClient
var ErrNotInitialized = errors.New("redis client not initialized")

const defaultDialTimeout = 5 * time.Second

// Config describes the shared client. URL follows redis:// syntax; Password
// overrides any password in the URL.
type Config struct {
	URL         string
	Password    string
	PoolSize    int
	DialTimeout time.Duration
}

var client *redis.Client

var pingClient = func(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// Init builds the shared client and verifies it with a ping
func Init(cfg Config) error {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return err
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	opts.DialTimeout = timeout

	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := pingClient(ctx, c); err != nil {
		_ = c.Close()
		return err
	}
	client = c
	return nil
}

// SetClient replaces the shared client
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the shared client, nil before Init
func GetClient() *redis.Client {
	return client
}

// Ping checks the shared client; used by the health endpoint
func Ping(ctx context.Context) error {
	if client == nil {
		return ErrNotInitialized
	}
	return pingClient(ctx, client)
}

// Close closes the shared client if one is set
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Set(ctx, key, value, expiration).Err()
}

func Get(ctx context.Context, key string) (string, error) {
	if client == nil {
		return "", ErrNotInitialized
	}
	return client.Get(ctx, key).Result()
}

func Del(ctx context.Context, key string) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Del(ctx, key).Err()
}

// SetNX sets key only when it is absent
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if client == nil {
		return false, ErrNotInitialized
	}
	return client.SetNX(ctx, key, value, expiration).Result()
}
