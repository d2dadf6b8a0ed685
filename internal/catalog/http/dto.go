package http

import (
	"github.com/nekogravitycat/transfer-booking-backend/internal/catalog"
)

type ListVehiclesRequest struct {
	Type      string `form:"type" binding:"omitempty,oneof=sedan suv van bus"`
	Available bool   `form:"available"`
}

type ListToursRequest struct {
	Category string `form:"category" binding:"omitempty,oneof=adventure cultural beach nature city"`
	Popular  bool   `form:"popular"`
}

type VehicleResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Capacity        int      `json:"capacity"`
	LuggageCapacity int      `json:"luggageCapacity"`
	BasePrice       float64  `json:"basePrice"`
	Features        []string `json:"features"`
	ImageURL        string   `json:"imageUrl"`
	Available       bool     `json:"available"`
}

func NewVehicleResponse(v *catalog.Vehicle) VehicleResponse {
	features := v.Features
	if features == nil {
		features = []string{}
	}
	return VehicleResponse{
		ID:              v.ID,
		Name:            v.Name,
		Type:            string(v.Type),
		Capacity:        v.Capacity,
		LuggageCapacity: v.LuggageCapacity,
		BasePrice:       v.BasePrice,
		Features:        features,
		ImageURL:        v.ImageURL,
		Available:       v.Available,
	}
}

type TourResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Price       float64  `json:"price"`
	Includes    []string `json:"includes"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Popular     bool     `json:"popular"`
}

func NewTourResponse(t *catalog.Tour) TourResponse {
	includes := t.Includes
	if includes == nil {
		includes = []string{}
	}
	return TourResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Duration:    t.Duration,
		Price:       t.Price,
		Includes:    includes,
		ImageURL:    t.ImageURL,
		Category:    string(t.Category),
		Popular:     t.Popular,
	}
}

type TestimonialResponse struct {
	ID               string `json:"id"`
	CustomerName     string `json:"customerName"`
	CustomerInitials string `json:"customerInitials"`
	Rating           int    `json:"rating"`
	Review           string `json:"review"`
	Date             string `json:"date"`
	Verified         bool   `json:"verified"`
}

type OptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type LocationsResponse struct {
	Airports         []OptionResponse `json:"airports"`
	Destinations     []OptionResponse `json:"destinations"`
	ServiceInterests []OptionResponse `json:"serviceInterests"`
}

func newOptions(opts []catalog.Option) []OptionResponse {
	out := make([]OptionResponse, len(opts))
	for i, o := range opts {
		out[i] = OptionResponse{Value: o.Code, Label: o.Name}
	}
	return out
}
