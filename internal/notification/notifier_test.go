package notification

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/transfer-booking-backend/internal/contact"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/logger"
)

type fakeSender struct {
	mu       sync.Mutex
	failures int
	panics   bool
	sent     []string
	attempts int
	to       string
}

func (s *fakeSender) Send(ctx context.Context, to, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	s.to = to
	if s.panics {
		panic("boom")
	}
	if s.failures > 0 {
		s.failures--
		return errors.New("gateway unavailable")
	}
	s.sent = append(s.sent, message)
	return nil
}

func newTestNotifier(s Sender, log *slog.Logger) *Notifier {
	return NewNotifier(s, "+1 (809) 444-8800", log, WithRetryDelay(time.Millisecond))
}

func waitFor(t *testing.T, n *Notifier) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, n.Wait(ctx))
}

func TestNotifierDelivers(t *testing.T) {
	s := &fakeSender{}
	n := newTestNotifier(s, logger.Discard())

	n.NotifyBooking(sampleBooking())
	waitFor(t, n)

	require.Len(t, s.sent, 1)
	assert.Equal(t, 1, s.attempts)
	assert.Equal(t, "+1 (809) 444-8800", s.to)
	assert.Contains(t, s.sent[0], "+1 809 555 0101")
	assert.Contains(t, s.sent[0], "$60 USD")
}

func TestNotifierRetriesOnce(t *testing.T) {
	s := &fakeSender{failures: 1}
	n := newTestNotifier(s, logger.Discard())

	n.NotifyContact(contact.Message{ID: "c1", Name: "Marta", Email: "m@example.com", ServiceInterest: "other", Message: "hola"})
	waitFor(t, n)

	assert.Equal(t, 2, s.attempts)
	assert.Len(t, s.sent, 1)
}

func TestNotifierGivesUpAndLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	s := &fakeSender{failures: 5}
	n := newTestNotifier(s, log)

	n.NotifyBooking(sampleBooking())
	waitFor(t, n)

	assert.Equal(t, 2, s.attempts)
	assert.Empty(t, s.sent)
	assert.Contains(t, buf.String(), "notification failed")
	assert.Contains(t, buf.String(), "gateway unavailable")
}

func TestNotifierSurvivesSenderPanic(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	n := newTestNotifier(&fakeSender{panics: true}, log)

	n.NotifyBooking(sampleBooking())
	waitFor(t, n)

	assert.Contains(t, buf.String(), "notification sender panicked")
}

type blockingSender struct {
	release chan struct{}
}

func (s blockingSender) Send(ctx context.Context, to, message string) error {
	<-s.release
	return nil
}

func TestNotifierDoesNotBlockCaller(t *testing.T) {
	s := blockingSender{release: make(chan struct{})}
	n := newTestNotifier(s, logger.Discard())

	done := make(chan struct{})
	go func() {
		n.NotifyBooking(sampleBooking())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyBooking blocked on the sender")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.Wait(ctx), context.DeadlineExceeded)

	close(s.release)
	waitFor(t, n)
}

func TestLogSender(t *testing.T) {
	t.Run("Logs recipient and message", func(t *testing.T) {
		var buf bytes.Buffer
		s := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)), 0)

		require.NoError(t, s.Send(context.Background(), "+1 (809) 444-8800", "hola"))
		assert.Contains(t, buf.String(), "sending whatsapp notification")
		assert.Contains(t, buf.String(), "hola")
	})

	t.Run("Honours cancellation during the simulated delay", func(t *testing.T) {
		s := NewLogSender(logger.Discard(), time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, s.Send(ctx, "x", "y"), context.Canceled)
	})
}
