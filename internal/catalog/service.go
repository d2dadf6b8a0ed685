package catalog

import (
	"context"
)

type Service interface {
	ListVehicles(ctx context.Context, filter VehicleFilter) []Vehicle
	GetVehicle(ctx context.Context, id string) (*Vehicle, error)
	ListTours(ctx context.Context, filter TourFilter) []Tour
	GetTour(ctx context.Context, id string) (*Tour, error)
	ListTestimonials(ctx context.Context) []Testimonial
	Airports(ctx context.Context) []Option
	Destinations(ctx context.Context) []Option
	ServiceInterests(ctx context.Context) []Option

	// IsServiceInterest implements contact.Interests.
	IsServiceInterest(code string) bool
	HasVehicle(id string) bool
	HasTour(id string) bool
}

type service struct {
	cat *Catalog
}

// NewService serves a validated catalog. The catalog is read-only afterwards.
func NewService(cat *Catalog) Service {
	return &service{cat: cat}
}

func (s *service) ListVehicles(ctx context.Context, filter VehicleFilter) []Vehicle {
	out := make([]Vehicle, 0, len(s.cat.Vehicles))
	for _, v := range s.cat.Vehicles {
		if filter.Type != "" && v.Type != filter.Type {
			continue
		}
		if filter.AvailableOnly && !v.Available {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *service) GetVehicle(ctx context.Context, id string) (*Vehicle, error) {
	for i := range s.cat.Vehicles {
		if s.cat.Vehicles[i].ID == id {
			v := s.cat.Vehicles[i]
			return &v, nil
		}
	}
	return nil, ErrVehicleNotFound
}

func (s *service) ListTours(ctx context.Context, filter TourFilter) []Tour {
	out := make([]Tour, 0, len(s.cat.Tours))
	for _, t := range s.cat.Tours {
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.PopularOnly && !t.Popular {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *service) GetTour(ctx context.Context, id string) (*Tour, error) {
	for i := range s.cat.Tours {
		if s.cat.Tours[i].ID == id {
			t := s.cat.Tours[i]
			return &t, nil
		}
	}
	return nil, ErrTourNotFound
}

func (s *service) ListTestimonials(ctx context.Context) []Testimonial {
	return append([]Testimonial(nil), s.cat.Testimonials...)
}

func (s *service) Airports(ctx context.Context) []Option {
	return append([]Option(nil), s.cat.Airports...)
}

func (s *service) Destinations(ctx context.Context) []Option {
	return append([]Option(nil), s.cat.Destinations...)
}

func (s *service) ServiceInterests(ctx context.Context) []Option {
	return append([]Option(nil), s.cat.ServiceInterests...)
}

func (s *service) IsServiceInterest(code string) bool {
	for _, o := range s.cat.ServiceInterests {
		if o.Code == code {
			return true
		}
	}
	return false
}

func (s *service) HasVehicle(id string) bool {
	_, err := s.GetVehicle(context.Background(), id)
	return err == nil
}

func (s *service) HasTour(id string) bool {
	_, err := s.GetTour(context.Background(), id)
	return err == nil
}
