package http

import (
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/booking"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

// ListBookingsRequest defines query parameters for the admin booking list.
type ListBookingsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
}

type BookingResponse struct {
	ID              string     `json:"id"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	CustomerPhone   string     `json:"customerPhone"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	PickupDate      time.Time  `json:"pickupDate"`
	ReturnDate      *time.Time `json:"returnDate"`
	Passengers      int        `json:"passengers"`
	VehicleType     string     `json:"vehicleType"`
	ServiceType     string     `json:"serviceType"`
	EstimatedPrice  float64    `json:"estimatedPrice"`
	SpecialRequests *string    `json:"specialRequests"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		Origin:          b.Origin,
		Destination:     b.Destination,
		PickupDate:      b.PickupDate,
		ReturnDate:      b.ReturnDate,
		Passengers:      b.Passengers,
		VehicleType:     string(b.VehicleType),
		ServiceType:     string(b.ServiceType),
		EstimatedPrice:  b.EstimatedPrice,
		SpecialRequests: b.SpecialRequests,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// CreateBookingRequest is the booking form submission. Dates are strings so the
// form's datetime-local values are accepted alongside RFC 3339.
type CreateBookingRequest struct {
	CustomerName    string  `json:"customerName" binding:"required"`
	CustomerEmail   string  `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string  `json:"customerPhone" binding:"required"`
	Origin          string  `json:"origin" binding:"required"`
	Destination     string  `json:"destination" binding:"required"`
	PickupDate      string  `json:"pickupDate" binding:"required"`
	ReturnDate      *string `json:"returnDate"`
	Passengers      int     `json:"passengers" binding:"required,min=1"`
	VehicleType     string  `json:"vehicleType" binding:"required,oneof=sedan suv van bus"`
	ServiceType     string  `json:"serviceType" binding:"required,oneof=one_way round_trip"`
	EstimatedPrice  float64 `json:"estimatedPrice" binding:"required,gt=0"`
	SpecialRequests *string `json:"specialRequests"`
}

// ToServiceRequest parses the date fields.
func (r *CreateBookingRequest) ToServiceRequest() (booking.CreateRequest, error) {
	pickup, err := booking.ParseDate(r.PickupDate)
	if err != nil {
		return booking.CreateRequest{}, booking.ErrInvalidPickupDate
	}

	var ret *time.Time
	if r.ReturnDate != nil && *r.ReturnDate != "" {
		t, err := booking.ParseDate(*r.ReturnDate)
		if err != nil {
			return booking.CreateRequest{}, apperror.Invalid("returnDate", "must be a valid date")
		}
		ret = &t
	}

	return booking.CreateRequest{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Origin:          r.Origin,
		Destination:     r.Destination,
		PickupDate:      pickup,
		ReturnDate:      ret,
		Passengers:      r.Passengers,
		VehicleType:     pricing.VehicleCode(r.VehicleType),
		ServiceType:     pricing.ServiceType(r.ServiceType),
		EstimatedPrice:  r.EstimatedPrice,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
