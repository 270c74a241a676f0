package auth

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Service authenticates API requests.
//
// In local mode (enabled == false) login is deliberately disabled and
// every request is attributed to the fixed local user.
type Service struct {
	enabled bool
	jwt     *JWTService
	logger  zerolog.Logger
}

// ServiceConfig holds the dependencies for the auth service.
type ServiceConfig struct {
	// Enabled toggles token validation. When false the service runs in
	// local mode and Authenticate always succeeds.
	Enabled bool

	JWT    *JWTService
	Logger zerolog.Logger
}

// NewService creates a new auth service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		enabled: cfg.Enabled,
		jwt:     cfg.JWT,
		logger:  cfg.Logger,
	}
}

// Enabled reports whether token validation is active.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Authenticate resolves the user for an Authorization header value.
func (s *Service) Authenticate(authorization string) (*User, error) {
	if !s.enabled {
		return LocalUser(), nil
	}

	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("access token rejected")
		return nil, ErrUnauthorized
	}

	return &User{ID: claims.UserID}, nil
}

// IssueToken creates an access token for a user. Used by tooling and
// tests; there is no interactive login flow.
func (s *Service) IssueToken(user *User) (*TokenResponse, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		User:        user,
	}, nil
}
