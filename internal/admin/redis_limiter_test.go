package admin

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/logger"
)

func newRedisLimiter(t *testing.T, cfg LimitConfig) (*RedisLimiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr())
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLimiter(rdb, cfg), mr
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("Locks after max failures", func(t *testing.T) {
		l, mr := newRedisLimiter(t, LimitConfig{MaxAttempts: 3, Lockout: 30 * time.Second})

		for i := 0; i < 2; i++ {
			locked, err := l.Fail(ctx, "a")
			require.NoError(t, err)
			assert.False(t, locked)
		}
		locked, err := l.Fail(ctx, "a")
		require.NoError(t, err)
		assert.True(t, locked)
		assert.False(t, mr.Exists(failKey("a")))

		left, err := l.Blocked(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, left)

		left, err = l.Blocked(ctx, "b")
		require.NoError(t, err)
		assert.Zero(t, left)

		mr.FastForward(31 * time.Second)
		left, err = l.Blocked(ctx, "a")
		require.NoError(t, err)
		assert.Zero(t, left)
	})

	t.Run("Window starts at the first failure", func(t *testing.T) {
		l, mr := newRedisLimiter(t, LimitConfig{MaxAttempts: 3, Lockout: 30 * time.Second})

		_, err := l.Fail(ctx, "c")
		require.NoError(t, err)
		mr.FastForward(20 * time.Second)
		_, err = l.Fail(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, mr.TTL(failKey("c")))

		mr.FastForward(11 * time.Second)
		assert.False(t, mr.Exists(failKey("c")))

		locked, err := l.Fail(ctx, "c")
		require.NoError(t, err)
		assert.False(t, locked)
		count, err := mr.Get(failKey("c"))
		require.NoError(t, err)
		assert.Equal(t, "1", count)
	})

	t.Run("Default contract is five failures and thirty seconds", func(t *testing.T) {
		l, mr := newRedisLimiter(t, LimitConfig{})

		for i := 0; i < 4; i++ {
			locked, err := l.Fail(ctx, "e")
			require.NoError(t, err)
			assert.False(t, locked)
		}
		locked, err := l.Fail(ctx, "e")
		require.NoError(t, err)
		assert.True(t, locked)
		assert.Equal(t, 30*time.Second, mr.TTL(lockKey("e")))
	})

	t.Run("Reset clears failures and lockout", func(t *testing.T) {
		l, mr := newRedisLimiter(t, LimitConfig{MaxAttempts: 2, Lockout: time.Minute})

		_, _ = l.Fail(ctx, "d")
		locked, err := l.Fail(ctx, "d")
		require.NoError(t, err)
		require.True(t, locked)
		_, err = l.Fail(ctx, "d")
		require.NoError(t, err)

		require.NoError(t, l.Reset(ctx, "d"))
		assert.False(t, mr.Exists(failKey("d")))
		assert.False(t, mr.Exists(lockKey("d")))

		left, err := l.Blocked(ctx, "d")
		require.NoError(t, err)
		assert.Zero(t, left)
	})

	t.Run("Server errors surface", func(t *testing.T) {
		l, mr := newRedisLimiter(t, LimitConfig{})
		mr.Close()

		_, err := l.Blocked(ctx, "f")
		assert.ErrorContains(t, err, "read lockout")
		_, err = l.Fail(ctx, "f")
		assert.ErrorContains(t, err, "record failed attempt")
	})
}

func TestRedisLimiterBehindService(t *testing.T) {
	ctx := context.Background()
	l, _ := newRedisLimiter(t, LimitConfig{MaxAttempts: 2, Lockout: 30 * time.Second})

	keys, err := NewKeyChecker("Sunrise", 4)
	require.NoError(t, err)
	svc := NewService(keys, NewTokenManager("secret", time.Hour), l, logger.Discard())

	_, err = svc.Login(ctx, "10.0.0.9", "wrong")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = svc.Login(ctx, "10.0.0.9", "wrong")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	_, err = svc.Login(ctx, "10.0.0.9", "sunrise")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}
