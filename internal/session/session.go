// ABOUTME: Session payload returned by the Auth API and the state derived from it
// ABOUTME: Decodes the access token's expiry claim without verifying its signature

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Key is the well-known storage key for the persisted session blob
const Key = "currentUserData"

// User is the signed-in account as described by the Auth API
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Data is the session payload stored verbatim under Key
type Data struct {
	Role        string `json:"role"`
	AccessToken string `json:"access_token,omitempty"`
	User        User   `json:"user"`
}

// State is a loaded session
type State struct {
	Data      Data
	ExpiresAt time.Time
}

// NewState derives a session state from a stored payload
func NewState(data Data) *State {
	return &State{
		Data:      data,
		ExpiresAt: tokenExpiry(data.AccessToken),
	}
}

// Role returns the account role carried by the session
func (s *State) Role() string {
	if s == nil {
		return ""
	}
	return s.Data.Role
}

// Expired reports whether the access token has a known expiry in the past
func (s *State) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// tokenExpiry reads the exp claim of a JWT access token. Opaque tokens
// and tokens without exp yield the zero time.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
