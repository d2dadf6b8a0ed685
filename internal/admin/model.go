// Package admin guards the back-office endpoints with the operator's shared access key.
// A successful login yields a short-lived signed session token; repeated failures from
// one client are locked out for a while.
package admin

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidKey      = apperror.New(http.StatusUnauthorized, apperror.KindUnauthorized, "invalid access key")
	ErrMissingToken    = apperror.New(http.StatusUnauthorized, apperror.KindUnauthorized, "missing Authorization header")
	ErrMalformedHeader = apperror.New(http.StatusUnauthorized, apperror.KindUnauthorized, "invalid Authorization header format")
	ErrInvalidToken    = apperror.New(http.StatusUnauthorized, apperror.KindUnauthorized, "invalid or expired token")
	ErrTooManyAttempts = apperror.New(http.StatusTooManyRequests, apperror.KindTooManyAttempts, "too many failed attempts, try again later")
)

// Session is an issued admin token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
