package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	{
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.GET("/:id/voucher", h.Voucher)
	}

	// === Admin Routes ===
	admin := g.Group("/admin/bookings")
	admin.Use(adminMiddleware)
	{
		admin.GET("", h.List)
		admin.PATCH("/:id/status", h.UpdateStatus)
	}
}
