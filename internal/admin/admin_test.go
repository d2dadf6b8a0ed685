package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestService(t *testing.T) (Service, *MemoryLimiter, *fakeClock) {
	t.Helper()
	keys, err := NewKeyChecker("Dominican2024", bcrypt.MinCost)
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewMemoryLimiter(LimitConfig{MaxAttempts: 5, Lockout: 30 * time.Second})
	limiter.now = clock.now

	return NewService(keys, NewTokenManager("test-secret", 24*time.Hour), limiter, logger.Discard()), limiter, clock
}

func TestKeyChecker(t *testing.T) {
	k, err := NewKeyChecker("Dominican2024", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, k.Matches("Dominican2024"))
	assert.True(t, k.Matches("dominican2024"))
	assert.True(t, k.Matches("  DOMINICAN2024 "))
	assert.False(t, k.Matches("dominican2025"))
	assert.False(t, k.Matches(""))

	_, err = NewKeyChecker("   ", bcrypt.MinCost)
	assert.Error(t, err)
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }

	s, err := m.Issue()
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), s.ExpiresAt)

	t.Run("Valid", func(t *testing.T) {
		claims, err := m.Parse(s.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("Other secret", func(t *testing.T) {
		other := NewTokenManager("another", time.Hour)
		other.now = m.now
		_, err := other.Parse(s.Token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		later := NewTokenManager("secret", time.Hour)
		later.now = func() time.Time { return start.Add(2 * time.Hour) }
		_, err := later.Parse(s.Token)
		assert.Error(t, err)
	})

	t.Run("Unsigned token", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: "admin"})
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Parse(raw)
		assert.Error(t, err)
	})
}

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(LimitConfig{MaxAttempts: 3, Lockout: 30 * time.Second})
	l.now = clock.now

	t.Run("Locks after max failures", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			locked, err := l.Fail(ctx, "a")
			require.NoError(t, err)
			assert.False(t, locked)
		}
		locked, _ := l.Fail(ctx, "a")
		assert.True(t, locked)

		left, _ := l.Blocked(ctx, "a")
		assert.Equal(t, 30*time.Second, left)

		left, _ = l.Blocked(ctx, "b")
		assert.Zero(t, left)

		clock.advance(31 * time.Second)
		left, _ = l.Blocked(ctx, "a")
		assert.Zero(t, left)
	})

	t.Run("Old failures expire", func(t *testing.T) {
		_, _ = l.Fail(ctx, "c")
		_, _ = l.Fail(ctx, "c")
		clock.advance(31 * time.Second)

		locked, _ := l.Fail(ctx, "c")
		assert.False(t, locked)
	})

	t.Run("Reset", func(t *testing.T) {
		_, _ = l.Fail(ctx, "d")
		_, _ = l.Fail(ctx, "d")
		require.NoError(t, l.Reset(ctx, "d"))

		locked, _ := l.Fail(ctx, "d")
		assert.False(t, locked)
	})
}

func TestMemoryLimiterPrunesExpiredClients(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(LimitConfig{MaxAttempts: 3, Lockout: 30 * time.Second})
	l.now = clock.now

	for i := 0; i < 3; i++ {
		_, _ = l.Fail(ctx, "locked")
	}
	_, _ = l.Fail(ctx, "stale")
	clock.advance(20 * time.Second)
	_, _ = l.Fail(ctx, "recent")
	assert.Len(t, l.clients, 3)

	left, _ := l.Blocked(ctx, "locked")
	assert.Equal(t, 10*time.Second, left)

	clock.advance(11 * time.Second)
	_, _ = l.Fail(ctx, "new")

	assert.Len(t, l.clients, 2)
	assert.Contains(t, l.clients, "recent")
	assert.Contains(t, l.clients, "new")
	assert.Equal(t, 1, l.clients["recent"].fails)
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		s, err := svc.Login(ctx, "10.0.0.1", "dominican2024")
		require.NoError(t, err)
		assert.NotEmpty(t, s.Token)
		assert.NoError(t, svc.Authorize(s.Token))
	})

	t.Run("Wrong key", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Login(ctx, "10.0.0.1", "guess")
		assert.ErrorIs(t, err, ErrInvalidKey)
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	})

	t.Run("Lockout blocks even the right key", func(t *testing.T) {
		svc, _, clock := newTestService(t)
		for i := 0; i < 4; i++ {
			_, err := svc.Login(ctx, "10.0.0.2", "guess")
			require.ErrorIs(t, err, ErrInvalidKey)
		}
		_, err := svc.Login(ctx, "10.0.0.2", "guess")
		assert.ErrorIs(t, err, ErrTooManyAttempts)

		_, err = svc.Login(ctx, "10.0.0.2", "Dominican2024")
		assert.ErrorIs(t, err, ErrTooManyAttempts)

		_, err = svc.Login(ctx, "10.0.0.3", "Dominican2024")
		assert.NoError(t, err, "other clients are not affected")

		clock.advance(30 * time.Second)
		_, err = svc.Login(ctx, "10.0.0.2", "Dominican2024")
		assert.NoError(t, err)
	})

	t.Run("Success clears failures", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		for i := 0; i < 4; i++ {
			_, _ = svc.Login(ctx, "10.0.0.4", "guess")
		}
		_, err := svc.Login(ctx, "10.0.0.4", "Dominican2024")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "10.0.0.4", "guess")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("Authorize rejects garbage", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		assert.ErrorIs(t, svc.Authorize("not-a-token"), ErrInvalidToken)
	})
}

func TestAdminRequired(t *testing.T) {
	svc, _, _ := newTestService(t)
	s, err := svc.Login(context.Background(), "10.0.0.1", "Dominican2024")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/secret", AdminRequired(svc), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"Missing header", "", http.StatusUnauthorized},
		{"Wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"Bad token", "Bearer abc", http.StatusUnauthorized},
		{"Valid token", "Bearer " + s.Token, http.StatusOK},
		{"Scheme is case-insensitive", "bearer " + s.Token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"kind":"unauthorized"`)
			}
		})
	}
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "admin:login:fails:10.0.0.1", failKey("10.0.0.1"))
	assert.Equal(t, "admin:login:lock:10.0.0.1", lockKey("10.0.0.1"))
}
