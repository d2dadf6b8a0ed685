package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/vehicles", h.ListVehicles)
	g.GET("/vehicles/:id", h.GetVehicle)
	g.GET("/tours", h.ListTours)
	g.GET("/tours/:id", h.GetTour)
	g.GET("/testimonials", h.ListTestimonials)
	g.GET("/locations", h.Locations)
}
