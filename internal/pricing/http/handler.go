package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pricing"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ListClasses returns the vehicle class table the booking form prices with.
func (h *Handler) ListClasses(c *gin.Context) {
	c.JSON(http.StatusOK, pricing.Classes())
}

// Quote is the server copy of the booking form's advisory estimate.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	q, err := pricing.NewQuote(req.Passengers, pricing.ServiceType(req.ServiceType), pricing.VehicleCode(req.VehicleType))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(q))
}
