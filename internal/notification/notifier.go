package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/booking"
	"github.com/nekogravitycat/transfer-booking-backend/internal/contact"
)

// Sender delivers one formatted message to a recipient.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// LogSender stands in for the WhatsApp Business API: it logs the message and
// waits for the configured delay.
type LogSender struct {
	logger *slog.Logger
	delay  time.Duration
}

func NewLogSender(logger *slog.Logger, delay time.Duration) *LogSender {
	return &LogSender{logger: logger, delay: delay}
}

func (s *LogSender) Send(ctx context.Context, to, message string) error {
	s.logger.InfoContext(ctx, "sending whatsapp notification", "to", to, "message", message)

	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

const (
	defaultSendTimeout = 10 * time.Second
	defaultRetryDelay  = time.Second
	maxAttempts        = 2
)

// Notifier formats records and sends them in the background. A failed send is
// retried once; failures are logged and never reach the caller.
type Notifier struct {
	sender     Sender
	to         string
	logger     *slog.Logger
	timeout    time.Duration
	retryDelay time.Duration

	wg sync.WaitGroup
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSendTimeout bounds each send attempt.
func WithSendTimeout(d time.Duration) Option {
	return func(n *Notifier) { n.timeout = d }
}

// WithRetryDelay sets the pause before the retry.
func WithRetryDelay(d time.Duration) Option {
	return func(n *Notifier) { n.retryDelay = d }
}

func NewNotifier(sender Sender, to string, logger *slog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		sender:     sender,
		to:         to,
		logger:     logger,
		timeout:    defaultSendTimeout,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyBooking implements booking.Notifier.
func (n *Notifier) NotifyBooking(b booking.Booking) {
	n.dispatch("booking", b.ID, FormatBooking(b))
}

// NotifyContact implements contact.Notifier.
func (n *Notifier) NotifyContact(m contact.Message) {
	n.dispatch("contact_message", m.ID, FormatContact(m))
}

func (n *Notifier) dispatch(entity, id, message string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error("notification sender panicked", "entity", entity, "id", id, "panic", r)
			}
		}()

		if err := n.deliver(message); err != nil {
			n.logger.Error("notification failed", "entity", entity, "id", id, "to", n.to, "error", err)
			return
		}
		n.logger.Debug("notification sent", "entity", entity, "id", id)
	}()
}

func (n *Notifier) deliver(message string) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(n.retryDelay)
		}

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		err = n.sender.Send(ctx, n.to, message)
		cancel()
		if err == nil {
			return nil
		}
		if attempt < maxAttempts {
			n.logger.Warn("notification attempt failed, retrying", "attempt", attempt, "error", err)
		}
	}
	return fmt.Errorf("after %d attempts: %w", maxAttempts, err)
}

// Wait blocks until in-flight sends finish or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
