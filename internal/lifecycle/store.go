package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
)

// maxIDAttempts bounds regeneration when a repository reports a duplicate id.
const maxIDAttempts = 3

// Store assigns identity and timestamps, and applies the status policy on top of a Repository.
type Store[T any, S ~string] struct {
	schema Schema[T, S]
	repo   Repository[T, S]
	policy Policy
	newID  func() string
	now    func() time.Time
}

// Option configures a Store.
type Option func(*options)

type options struct {
	policy Policy
	newID  func() string
	now    func() time.Time
}

// WithPolicy sets the status update policy (default PolicyOpen).
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func NewStore[T any, S ~string](schema Schema[T, S], repo Repository[T, S], opts ...Option) *Store[T, S] {
	o := options{
		policy: PolicyOpen,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T, S]{
		schema: schema,
		repo:   repo,
		policy: o.policy,
		newID:  o.newID,
		now:    o.now,
	}
}

// Schema returns the entity schema the store was built with.
func (s *Store[T, S]) Schema() Schema[T, S] {
	return s.schema
}

// Policy returns the active status policy.
func (s *Store[T, S]) Policy() Policy {
	return s.policy
}

// Create stamps a new id, the initial status and the creation time onto rec and stores it.
// Callers validate rec first; Create only fails on storage errors.
func (s *Store[T, S]) Create(ctx context.Context, rec T) (T, error) {
	now := s.now()

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		s.schema.Stamp(&rec, s.newID(), s.schema.Initial, now)

		err = s.repo.Insert(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrDuplicateID) {
			break
		}
	}

	var zero T
	return zero, fmt.Errorf("create %s: %w", s.schema.Entity, err)
}

func (s *Store[T, S]) GetByID(ctx context.Context, id string) (T, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a point-in-time snapshot in insertion order.
func (s *Store[T, S]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// UpdateStatus replaces the status of one record. Unknown statuses are rejected before
// the repository is touched; under PolicyStrict the transition table is enforced atomically.
func (s *Store[T, S]) UpdateStatus(ctx context.Context, id string, status S) (T, error) {
	if !s.schema.Known(status) {
		var zero T
		return zero, apperror.Invalid("status", "must be one of: "+s.schema.statusList())
	}

	var guard Guard[S]
	if s.policy == PolicyStrict {
		guard = func(current S) error {
			if current == status || s.schema.CanTransition(current, status) {
				return nil
			}
			return apperror.New(http.StatusConflict, apperror.KindInvalidTransition,
				fmt.Sprintf("%s cannot move from %s to %s", s.schema.Entity, current, status))
		}
	}

	return s.repo.UpdateStatus(ctx, id, status, s.now(), guard)
}
