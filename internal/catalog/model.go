package catalog

import (
	"net/http"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

var (
	ErrVehicleNotFound = apperror.New(http.StatusNotFound, apperror.KindNotFound, "vehicle not found")
	ErrTourNotFound    = apperror.New(http.StatusNotFound, apperror.KindNotFound, "tour not found")
)

type TourCategory string

const (
	CategoryAdventure TourCategory = "adventure"
	CategoryCultural  TourCategory = "cultural"
	CategoryBeach     TourCategory = "beach"
	CategoryNature    TourCategory = "nature"
	CategoryCity      TourCategory = "city"
)

func (c TourCategory) IsValid() bool {
	switch c {
	case CategoryAdventure, CategoryCultural, CategoryBeach, CategoryNature, CategoryCity:
		return true
	}
	return false
}

// Vehicle is a fleet listing. Type ties it to a pricing class; BasePrice is the
// listing price shown on the fleet page.
type Vehicle struct {
	ID              string              `yaml:"id"`
	Name            string              `yaml:"name"`
	Type            pricing.VehicleCode `yaml:"type"`
	Capacity        int                 `yaml:"capacity"`
	LuggageCapacity int                 `yaml:"luggageCapacity"`
	BasePrice       float64             `yaml:"basePrice"`
	Features        []string            `yaml:"features"`
	ImageURL        string              `yaml:"imageUrl"`
	Available       bool                `yaml:"available"`
}

type Tour struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Duration    string       `yaml:"duration"`
	Price       float64      `yaml:"price"`
	Includes    []string     `yaml:"includes"`
	ImageURL    string       `yaml:"imageUrl"`
	Category    TourCategory `yaml:"category"`
	Popular     bool         `yaml:"popular"`
}

type Testimonial struct {
	ID               string `yaml:"id"`
	CustomerName     string `yaml:"customerName"`
	CustomerInitials string `yaml:"customerInitials"`
	Rating           int    `yaml:"rating"`
	Review           string `yaml:"review"`
	Date             string `yaml:"date"`
	Verified         bool   `yaml:"verified"`
}

// Option is a coded choice offered by a form: a pickup airport, a destination
// or a contact service interest.
type Option struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Catalog is the static marketing content of the site.
type Catalog struct {
	Vehicles         []Vehicle     `yaml:"vehicles"`
	Tours            []Tour        `yaml:"tours"`
	Testimonials     []Testimonial `yaml:"testimonials"`
	Airports         []Option      `yaml:"airports"`
	Destinations     []Option      `yaml:"destinations"`
	ServiceInterests []Option      `yaml:"serviceInterests"`
}

type VehicleFilter struct {
	Type          pricing.VehicleCode
	AvailableOnly bool
}

type TourFilter struct {
	Category    TourCategory
	PopularOnly bool
}
