package pricing

import (
	"net/http"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
)

const (
	// RoundTripFactor is applied to the base price of round trips.
	RoundTripFactor = 1.8
	// Tolerance is the maximum accepted difference between a client estimate and the server quote.
	Tolerance = 0.5
	// Currency of every price in the catalog.
	Currency = "USD"
)

var (
	ErrInvalidPassengers = apperror.Invalid("passengers", "must be at least 1")
	ErrUnknownVehicle    = apperror.Invalid("vehicleType", "must be one of: sedan suv van bus")
	ErrUnknownService    = apperror.Invalid("serviceType", "must be one of: one_way round_trip")
	ErrInvalidEstimate   = apperror.New(http.StatusUnprocessableEntity, apperror.KindInvalidEstimate, "estimated price does not match the current quote")
)

// VehicleCode identifies a vehicle class.
type VehicleCode string

const (
	Sedan VehicleCode = "sedan"
	SUV   VehicleCode = "suv"
	Van   VehicleCode = "van"
	Bus   VehicleCode = "bus"
)

// IsValid reports whether the code belongs to the catalog.
func (c VehicleCode) IsValid() bool {
	_, ok := Lookup(c)
	return ok
}

// ServiceType is the trip shape.
type ServiceType string

const (
	OneWay    ServiceType = "one_way"
	RoundTrip ServiceType = "round_trip"
)

// IsValid reports whether the service type is known.
func (s ServiceType) IsValid() bool {
	return s == OneWay || s == RoundTrip
}

// Label returns the Spanish label used on the site and in notifications.
func (s ServiceType) Label() string {
	if s == RoundTrip {
		return "Ida y vuelta"
	}
	return "Solo ida"
}

// VehicleClass is one capacity band of the fleet with its base price.
// MaxPassengers of 0 means the band has no upper bound.
type VehicleClass struct {
	Code          VehicleCode `json:"code" yaml:"code"`
	Label         string      `json:"label" yaml:"label"`
	BasePrice     float64     `json:"basePrice" yaml:"basePrice"`
	MinPassengers int         `json:"minPassengers" yaml:"minPassengers"`
	MaxPassengers int         `json:"maxPassengers,omitempty" yaml:"maxPassengers,omitempty"`
}

// Fits reports whether the passenger count falls inside the class band.
func (v VehicleClass) Fits(passengers int) bool {
	if passengers < v.MinPassengers {
		return false
	}
	return v.MaxPassengers == 0 || passengers <= v.MaxPassengers
}

// classes is ordered by band. It is the same table the booking page prices with.
var classes = []VehicleClass{
	{Code: Sedan, Label: "Sedán Económico", BasePrice: 35, MinPassengers: 1, MaxPassengers: 3},
	{Code: SUV, Label: "SUV Premium", BasePrice: 60, MinPassengers: 4, MaxPassengers: 6},
	{Code: Van, Label: "Van Grupal", BasePrice: 120, MinPassengers: 7, MaxPassengers: 12},
	{Code: Bus, Label: "Autobús", BasePrice: 180, MinPassengers: 13},
}

// Classes returns a copy of the vehicle class catalog in band order.
func Classes() []VehicleClass {
	out := make([]VehicleClass, len(classes))
	copy(out, classes)
	return out
}

// Lookup returns the class for a code.
func Lookup(code VehicleCode) (VehicleClass, bool) {
	for _, c := range classes {
		if c.Code == code {
			return c, true
		}
	}
	return VehicleClass{}, false
}

// Quote is the result of pricing a trip.
type Quote struct {
	Passengers         int         `json:"passengers"`
	ServiceType        ServiceType `json:"serviceType"`
	RecommendedVehicle VehicleCode `json:"recommendedVehicle"`
	VehicleType        VehicleCode `json:"vehicleType"`
	EstimatedPrice     float64     `json:"estimatedPrice"`
	Currency           string      `json:"currency"`
}
