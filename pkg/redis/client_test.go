package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitInvalidURL(t *testing.T) {
	assert.Error(t, Init(Config{URL: "://invalid-url"}))
}

func TestInitWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("pw")

	require.NoError(t, Init(Config{URL: "redis://" + mr.Addr(), Password: "pw", PoolSize: 3}))
	t.Cleanup(func() {
		_ = Close()
		SetClient(nil)
	})
	require.NotNil(t, GetClient())
	assert.Equal(t, 3, GetClient().Options().PoolSize)

	ctx := context.Background()
	require.NoError(t, Ping(ctx))
	require.NoError(t, Set(ctx, "k", "v", time.Minute))
	v, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.ErrorIs(t, err, goredis.Nil)
}

func TestInitPingFailureKeepsPreviousClient(t *testing.T) {
	orig := pingClient
	t.Cleanup(func() {
		pingClient = orig
		SetClient(nil)
	})
	SetClient(nil)

	pingClient = func(context.Context, *goredis.Client) error {
		return errors.New("ping failed")
	}
	err := Init(Config{URL: "redis://127.0.0.1:6379/0", DialTimeout: 50 * time.Millisecond})
	assert.ErrorContains(t, err, "ping failed")
	assert.Nil(t, GetClient())
}

func TestHelpersWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.ErrorIs(t, Ping(ctx), ErrNotInitialized)
	assert.ErrorIs(t, Set(ctx, "k", "v", time.Second), ErrNotInitialized)
	_, err := Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, Del(ctx, "k"), ErrNotInitialized)
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.NoError(t, Close())
}

func TestHelpersWithUnreachableRedis(t *testing.T) {
	SetClient(goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:0",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	}))
	t.Cleanup(func() { SetClient(nil) })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, Ping(ctx))
	assert.Error(t, Set(ctx, "k", "v", time.Second))
	_, err := Get(ctx, "k")
	assert.Error(t, err)
}
