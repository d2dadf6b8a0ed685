package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/transfer-booking-backend/internal/admin"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
)

type Handler struct {
	service admin.Service
}

func NewHandler(service admin.Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /admin/session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), c.ClientIP(), req.AccessKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(session))
}

// Check handles GET /admin/session, answering 204 while the token is valid.
func (h *Handler) Check(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
