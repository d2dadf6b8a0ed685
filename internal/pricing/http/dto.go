package http

import "github.com/nekogravitycat/transfer-booking-backend/internal/pricing"

type QuoteRequest struct {
	Passengers  int    `json:"passengers" binding:"required,min=1"`
	ServiceType string `json:"serviceType" binding:"required,oneof=one_way round_trip"`
	VehicleType string `json:"vehicleType" binding:"omitempty,oneof=sedan suv van bus"`
}

type QuoteResponse struct {
	Passengers         int     `json:"passengers"`
	ServiceType        string  `json:"serviceType"`
	RecommendedVehicle string  `json:"recommendedVehicle"`
	VehicleType        string  `json:"vehicleType"`
	EstimatedPrice     float64 `json:"estimatedPrice"`
	Currency           string  `json:"currency"`
	Display            string  `json:"display"`
}

func NewQuoteResponse(q pricing.Quote) QuoteResponse {
	return QuoteResponse{
		Passengers:         q.Passengers,
		ServiceType:        string(q.ServiceType),
		RecommendedVehicle: string(q.RecommendedVehicle),
		VehicleType:        string(q.VehicleType),
		EstimatedPrice:     q.EstimatedPrice,
		Currency:           q.Currency,
		Display:            pricing.FormatUSD(q.EstimatedPrice),
	}
}
