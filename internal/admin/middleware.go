package admin

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
)

// AdminRequired is a Gin middleware that validates the session token from Authorization: Bearer <token>.
func AdminRequired(s Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, ErrMissingToken)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, ErrMalformedHeader)
			c.Abort()
			return
		}

		if err := s.Authorize(parts[1]); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
