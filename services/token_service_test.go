package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/coffee-store/models"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("secret", "CoffeeStore", time.Hour)

	token, err := ts.GenerateToken(models.Principal{ID: 7, Name: "Ana", Role: models.RoleBarista})
	require.NoError(t, err)

	p, err := ts.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.ID)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, models.RoleBarista, p.Role)
}

func TestParseTokenRejects(t *testing.T) {
	ts := NewTokenService("secret", "CoffeeStore", time.Hour)
	token, err := ts.GenerateToken(models.Principal{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other", "CoffeeStore", time.Hour)
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenService("secret", "Elsewhere", time.Hour)
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokenService("secret", "CoffeeStore", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ts.ParseToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
