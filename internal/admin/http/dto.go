package http

import (
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/admin"
)

type LoginRequest struct {
	AccessKey string `json:"accessKey" binding:"required"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewSessionResponse(s admin.Session) SessionResponse {
	return SessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt}
}
