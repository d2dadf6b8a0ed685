package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/lifecycle"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, apperror.KindNotFound, "booking not found")
	ErrReturnDateRequired    = apperror.Invalid("returnDate", "is required for round trips")
	ErrReturnBeforePickup    = apperror.Invalid("returnDate", "must not be before pickupDate")
	ErrSameOriginDestination = apperror.Invalid("destination", "must differ from origin")
	ErrInvalidPickupDate     = apperror.Invalid("pickupDate", "must be a valid date")
	ErrInvalidEmail          = apperror.Invalid("customerEmail", "must be a valid email address")
	ErrMissingEstimate       = apperror.Invalid("estimatedPrice", "must be a positive amount")
	ErrInvalidStatus         = apperror.Invalid("status", "must be one of: pending confirmed in_progress completed cancelled")
	ErrInvalidEstimate       = &apperror.AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    apperror.KindInvalidEstimate,
		Field:   "estimatedPrice",
		Message: "does not match the server quote for this trip",
	}
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// OperatorZone is the Dominican Republic local time. Naive dates submitted by the
// booking form are read in this zone.
var OperatorZone = time.FixedZone("AST", -4*60*60)

type Booking struct {
	ID              string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Origin          string
	Destination     string
	PickupDate      time.Time
	ReturnDate      *time.Time
	Passengers      int
	VehicleType     pricing.VehicleCode
	ServiceType     pricing.ServiceType
	EstimatedPrice  float64
	SpecialRequests *string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Filter struct {
	Status   Status
	Page     int
	PageSize int
}

// Schema plugs Booking into the generic lifecycle store.
var Schema = lifecycle.Schema[Booking, Status]{
	Entity:   "booking",
	Initial:  StatusPending,
	Statuses: []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled},
	Transitions: map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted},
	},
	NotFound: ErrNotFound,
	ID:       func(b Booking) string { return b.ID },
	Status:   func(b Booking) Status { return b.Status },
	Stamp: func(b *Booking, id string, status Status, now time.Time) {
		b.ID = id
		b.Status = status
		b.CreatedAt = now
		b.UpdatedAt = now
	},
	SetStatus: func(b *Booking, status Status, now time.Time) {
		b.Status = status
		b.UpdatedAt = now
	},
}

// dateLayouts are the pickup/return formats accepted from clients, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a client supplied date. Values without an offset are read in OperatorZone.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, OperatorZone)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
