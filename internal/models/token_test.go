package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := RefreshToken{ExpiresAt: now}

	assert.True(t, token.Expired(now))
	assert.True(t, token.Expired(now.Add(time.Second)))
	assert.False(t, token.Expired(now.Add(-time.Second)))
}

func TestTokenPairStrings(t *testing.T) {
	pair := TokenPair{AccessToken: &jwt.Token{Raw: "access"}, RefreshToken: &jwt.Token{Raw: "refresh"}}
	access, refresh := pair.Strings()
	assert.Equal(t, "access", access)
	assert.Equal(t, "refresh", refresh)
}
