package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/admin/session")
	{
		group.POST("", h.Login)
		group.GET("", adminMiddleware, h.Check)
	}
}
