package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/pricing/classes", h.ListClasses)
	g.POST("/quotes", h.Quote)
}
