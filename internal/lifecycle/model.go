// Package lifecycle stores status-driven records. Bookings and contact messages share
// the same shape: server-assigned id, an initial status, timestamps and status-only updates.
package lifecycle

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
)

// Schema describes one entity type to the generic store.
type Schema[T any, S ~string] struct {
	// Entity names the record in error messages ("booking").
	Entity string
	// Initial is the status every new record starts in.
	Initial S
	// Statuses is the full vocabulary of the entity.
	Statuses []S
	// Transitions is consulted under PolicyStrict only. A status absent from the map is terminal.
	Transitions map[S][]S
	// NotFound is returned when an id does not exist.
	NotFound error

	ID        func(rec T) string
	Status    func(rec T) S
	Stamp     func(rec *T, id string, status S, now time.Time)
	SetStatus func(rec *T, status S, now time.Time)
}

// Known reports whether status belongs to the vocabulary.
func (s Schema[T, S]) Known(status S) bool {
	for _, st := range s.Statuses {
		if st == status {
			return true
		}
	}
	return false
}

// CanTransition reports whether the transition table allows from -> to.
func (s Schema[T, S]) CanTransition(from, to S) bool {
	for _, next := range s.Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Schema[T, S]) statusList() string {
	parts := make([]string, len(s.Statuses))
	for i, st := range s.Statuses {
		parts[i] = string(st)
	}
	return strings.Join(parts, " ")
}

// Guard inspects the current status of a record before an update is applied.
// Repositories call it while holding whatever lock makes the update atomic.
type Guard[S ~string] func(current S) error

// Repository is the storage capability behind a Store. Implementations must make
// Insert and UpdateStatus atomic with respect to concurrent callers.
type Repository[T any, S ~string] interface {
	Insert(ctx context.Context, rec T) error
	GetByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	UpdateStatus(ctx context.Context, id string, status S, at time.Time, guard Guard[S]) (T, error)
}

// Policy selects how status updates are checked.
type Policy int

const (
	// PolicyOpen lets staff move a record to any status of its vocabulary.
	PolicyOpen Policy = iota
	// PolicyStrict only allows the moves listed in Schema.Transitions.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "open"
}

// ParsePolicy parses the STATUS_POLICY setting.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "open":
		return PolicyOpen, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyOpen, fmt.Errorf("unknown status policy %q", s)
	}
}

// ErrDuplicateID is returned by repositories when an id is already taken.
var ErrDuplicateID = apperror.New(http.StatusConflict, apperror.KindConflict, "record id already exists")
