package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/transfer-booking-backend/internal/catalog"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

type Handler struct {
	service catalog.Service
}

func NewHandler(service catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListVehicles(c *gin.Context) {
	var req ListVehiclesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	vehicles := h.service.ListVehicles(c.Request.Context(), catalog.VehicleFilter{
		Type:          pricing.VehicleCode(req.Type),
		AvailableOnly: req.Available,
	})

	items := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		items[i] = NewVehicleResponse(&vehicles[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetVehicle(c *gin.Context) {
	v, err := h.service.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewVehicleResponse(v))
}

func (h *Handler) ListTours(c *gin.Context) {
	var req ListToursRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tours := h.service.ListTours(c.Request.Context(), catalog.TourFilter{
		Category:    catalog.TourCategory(req.Category),
		PopularOnly: req.Popular,
	})

	items := make([]TourResponse, len(tours))
	for i := range tours {
		items[i] = NewTourResponse(&tours[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetTour(c *gin.Context) {
	t, err := h.service.GetTour(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTourResponse(t))
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	testimonials := h.service.ListTestimonials(c.Request.Context())

	items := make([]TestimonialResponse, len(testimonials))
	for i, t := range testimonials {
		items[i] = TestimonialResponse{
			ID:               t.ID,
			CustomerName:     t.CustomerName,
			CustomerInitials: t.CustomerInitials,
			Rating:           t.Rating,
			Review:           t.Review,
			Date:             t.Date,
			Verified:         t.Verified,
		}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Locations(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, LocationsResponse{
		Airports:         newOptions(h.service.Airports(ctx)),
		Destinations:     newOptions(h.service.Destinations(ctx)),
		ServiceInterests: newOptions(h.service.ServiceInterests(ctx)),
	})
}
