package booking

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/transfer-booking-backend/internal/lifecycle"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/textnorm"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

// Notifier is told about every stored booking. Implementations must not block the caller.
type Notifier interface {
	NotifyBooking(b Booking)
}

type CreateRequest struct {
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
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
}

type service struct {
	store    *lifecycle.Store[Booking, Status]
	notifier Notifier
}

var validate = validator.New()

// NewService builds the booking service over repo. notifier may be nil.
func NewService(repo Repository, notifier Notifier, opts ...lifecycle.Option) Service {
	return &service{
		store:    lifecycle.NewStore(Schema, repo, opts...),
		notifier: notifier,
	}
}

// normalize trims and NFC-normalizes the free-form fields in place.
func (r *CreateRequest) normalize() {
	r.CustomerName = textnorm.Clean(r.CustomerName)
	r.CustomerEmail = textnorm.Email(r.CustomerEmail)
	r.CustomerPhone = textnorm.Clean(r.CustomerPhone)
	r.Origin = textnorm.Clean(r.Origin)
	r.Destination = textnorm.Clean(r.Destination)
	if r.SpecialRequests != nil {
		v := textnorm.CleanMultiline(*r.SpecialRequests)
		r.SpecialRequests = nil
		if v != "" {
			r.SpecialRequests = &v
		}
	}
}

// Validate checks the request and returns the server computed price for it.
func (r *CreateRequest) Validate() (float64, error) {
	required := []struct {
		field, value string
	}{
		{"customerName", r.CustomerName},
		{"customerEmail", r.CustomerEmail},
		{"customerPhone", r.CustomerPhone},
		{"origin", r.Origin},
		{"destination", r.Destination},
	}
	for _, f := range required {
		if f.value == "" {
			return 0, apperror.Invalid(f.field, "is required")
		}
	}

	if err := validate.Var(r.CustomerEmail, "email"); err != nil {
		return 0, ErrInvalidEmail
	}
	if r.Origin == r.Destination {
		return 0, ErrSameOriginDestination
	}
	if r.PickupDate.IsZero() {
		return 0, ErrInvalidPickupDate
	}

	if r.ServiceType == pricing.RoundTrip {
		if r.ReturnDate == nil || r.ReturnDate.IsZero() {
			return 0, ErrReturnDateRequired
		}
		if r.ReturnDate.Before(r.PickupDate) {
			return 0, ErrReturnBeforePickup
		}
	}

	if r.EstimatedPrice <= 0 {
		// Field errors on the trip come first so the client learns about all of them.
		if _, err := pricing.EstimatePrice(r.Passengers, r.ServiceType, r.VehicleType); err != nil {
			return 0, err
		}
		return 0, ErrMissingEstimate
	}

	price, err := pricing.VerifyEstimate(r.EstimatedPrice, r.Passengers, r.ServiceType, r.VehicleType)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidEstimate) {
			return 0, ErrInvalidEstimate
		}
		return 0, err
	}
	return price, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	req.normalize()

	price, err := req.Validate()
	if err != nil {
		return nil, err
	}

	// One-way trips carry no return leg even if the client sent one.
	returnDate := req.ReturnDate
	if req.ServiceType != pricing.RoundTrip {
		returnDate = nil
	}

	b, err := s.store.Create(ctx, Booking{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Origin:          req.Origin,
		Destination:     req.Destination,
		PickupDate:      req.PickupDate,
		ReturnDate:      returnDate,
		Passengers:      req.Passengers,
		VehicleType:     req.VehicleType,
		ServiceType:     req.ServiceType,
		EstimatedPrice:  price,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyBooking(b)
	}
	return &b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bookings newest first, optionally filtered by status, with the total match count.
func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !Schema.Known(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*Booking, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if filter.Status != "" && all[i].Status != filter.Status {
			continue
		}
		matched = append(matched, &all[i])
	}

	page, _, _ := response.Paginate(matched, filter.Page, filter.PageSize)
	return page, len(matched), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	b, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
