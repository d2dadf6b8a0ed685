// Package pricing recommends a vehicle class for a party size and estimates the trip price.
// Everything here is pure: the browser preview and the server validation run the same rules.
package pricing

import (
	"fmt"
	"math"
)

// RecommendVehicle returns the unique class whose capacity band contains passengers.
func RecommendVehicle(passengers int) (VehicleClass, error) {
	if passengers < 1 {
		return VehicleClass{}, ErrInvalidPassengers
	}
	for _, c := range classes {
		if c.Fits(passengers) {
			return c, nil
		}
	}
	// Unreachable while the bands are exhaustive; see ValidateBands.
	return VehicleClass{}, fmt.Errorf("no vehicle class for %d passengers", passengers)
}

// EstimatePrice prices a trip: the class base price, times RoundTripFactor for round
// trips, rounded to the nearest whole dollar in both branches.
func EstimatePrice(passengers int, service ServiceType, code VehicleCode) (float64, error) {
	if passengers < 1 {
		return 0, ErrInvalidPassengers
	}
	if !service.IsValid() {
		return 0, ErrUnknownService
	}
	class, ok := Lookup(code)
	if !ok {
		return 0, ErrUnknownVehicle
	}

	price := class.BasePrice
	if service == RoundTrip {
		price *= RoundTripFactor
	}
	return math.Round(price), nil
}

// VerifyEstimate recomputes the price and checks the client's figure against it.
// It returns the server price, which is the only value that should be stored.
func VerifyEstimate(claimed float64, passengers int, service ServiceType, code VehicleCode) (float64, error) {
	price, err := EstimatePrice(passengers, service, code)
	if err != nil {
		return 0, err
	}
	if math.Abs(claimed-price) > Tolerance {
		return 0, ErrInvalidEstimate
	}
	return price, nil
}

// NewQuote builds a quote. When code is empty the recommended class is priced.
func NewQuote(passengers int, service ServiceType, code VehicleCode) (Quote, error) {
	recommended, err := RecommendVehicle(passengers)
	if err != nil {
		return Quote{}, err
	}
	if code == "" {
		code = recommended.Code
	}

	price, err := EstimatePrice(passengers, service, code)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Passengers:         passengers,
		ServiceType:        service,
		RecommendedVehicle: recommended.Code,
		VehicleType:        code,
		EstimatedPrice:     price,
		Currency:           Currency,
	}, nil
}

// ValidateBands checks that the bands start at 1, are contiguous, end open-ended and
// carry positive prices, so exactly one class matches any passenger count >= 1.
func ValidateBands(cs []VehicleClass) error {
	if len(cs) == 0 {
		return fmt.Errorf("vehicle class catalog is empty")
	}

	next := 1
	for i, c := range cs {
		if c.BasePrice <= 0 {
			return fmt.Errorf("class %s: base price must be positive", c.Code)
		}
		if c.MinPassengers != next {
			return fmt.Errorf("class %s: band starts at %d, want %d", c.Code, c.MinPassengers, next)
		}
		last := i == len(cs)-1
		if c.MaxPassengers == 0 {
			if !last {
				return fmt.Errorf("class %s: only the last band may be open-ended", c.Code)
			}
			return nil
		}
		if c.MaxPassengers < c.MinPassengers {
			return fmt.Errorf("class %s: band %d-%d is empty", c.Code, c.MinPassengers, c.MaxPassengers)
		}
		next = c.MaxPassengers + 1
	}
	return fmt.Errorf("last class must be open-ended, bands stop at %d", next-1)
}
