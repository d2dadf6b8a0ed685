package admin

import (
	"context"
	"fmt"
	"log/slog"
)

type Service interface {
	// Login exchanges the access key for a session. client identifies the caller for lockouts.
	Login(ctx context.Context, client, accessKey string) (Session, error)
	// Authorize validates a session token.
	Authorize(token string) error
}

type service struct {
	keys    *KeyChecker
	tokens  *TokenManager
	limiter Limiter
	logger  *slog.Logger
}

func NewService(keys *KeyChecker, tokens *TokenManager, limiter Limiter, logger *slog.Logger) Service {
	return &service{
		keys:    keys,
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}
}

func (s *service) Login(ctx context.Context, client, accessKey string) (Session, error) {
	left, err := s.limiter.Blocked(ctx, client)
	if err != nil {
		return Session{}, fmt.Errorf("check lockout: %w", err)
	}
	if left > 0 {
		return Session{}, ErrTooManyAttempts
	}

	if !s.keys.Matches(accessKey) {
		locked, err := s.limiter.Fail(ctx, client)
		if err != nil {
			return Session{}, err
		}
		if locked {
			s.logger.WarnContext(ctx, "admin login locked out", "client", client)
			return Session{}, ErrTooManyAttempts
		}
		return Session{}, ErrInvalidKey
	}

	if err := s.limiter.Reset(ctx, client); err != nil {
		s.logger.WarnContext(ctx, "failed to reset admin attempts", "client", client, "error", err)
	}
	return s.tokens.Issue()
}

func (s *service) Authorize(token string) error {
	if _, err := s.tokens.Parse(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}
