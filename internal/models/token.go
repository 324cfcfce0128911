package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RefreshToken is the stored record of the one refresh token a user may
// hold. Issuing a new pair replaces it.
type RefreshToken struct {
	UserID      uuid.UUID
	HashedToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenPair holds freshly signed tokens; Raw fields carry the compact form
// handed to clients.
type TokenPair struct {
	AccessToken  *jwt.Token
	RefreshToken *jwt.Token
}

func (p TokenPair) Strings() (access, refresh string) {
	return p.AccessToken.Raw, p.RefreshToken.Raw
}
