package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the gallery API under g and the file routes under files.
func RegisterRoutes(g *gin.RouterGroup, files gin.IRouter, h *Handler, adminMiddleware gin.HandlerFunc) {
	g.GET("/images", h.List)

	fileGroup := files.Group("/files")
	{
		fileGroup.GET("/:id", h.ServeFile)
		fileGroup.GET("/:id/thumbnail", h.ServeThumbnail)
	}

	// === Admin Routes ===
	admin := g.Group("/admin/images")
	admin.Use(adminMiddleware)
	{
		admin.GET("", h.AdminList)
		admin.POST("", h.Upload)
		admin.GET("/:id", h.Get)
		admin.PATCH("/:id", h.Update)
		admin.POST("/:id/primary", h.SetPrimary)
		admin.DELETE("/:id", h.Delete)
	}
}
