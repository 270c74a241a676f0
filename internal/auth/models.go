// Package auth provides authentication services for AutoCare.
//
// Authentication is optional: when disabled via configuration the
// application runs single-user and every request is attributed to a
// fixed local identity. When enabled, bearer tokens are validated as
// HS256 JWTs issued by this service.
package auth

import (
	"errors"
	"time"
)

// LocalUserID is the fixed identity used when authentication is
// disabled.
const LocalUserID = "usr_local"

// Auth errors.
var (
	ErrUnauthorized = errors.New("unauthorized")
)

// User represents an authenticated user in the system.
type User struct {
	ID        string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LocalUser returns the fixed user injected in local mode.
func LocalUser() *User {
	return &User{
		ID:   LocalUserID,
		Name: "Local User",
	}
}

// TokenResponse represents the response after issuing a token.
type TokenResponse struct {
	// AccessToken is the JWT access token for API authentication.
	AccessToken string `json:"accessToken"`

	// TokenType is always "Bearer".
	TokenType string `json:"tokenType"`

	// ExpiresIn is the number of seconds until the access token expires.
	ExpiresIn int64 `json:"expiresIn"`

	// User contains the authenticated user's information.
	User *User `json:"user"`
}
