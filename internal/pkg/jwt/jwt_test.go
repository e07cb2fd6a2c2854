//go:build unit

package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation/internal/pkg/jwt"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken("user-42", "+919900000000")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.UserID)
		assert.Equal(t, "+919900000000", claims.Phone)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewService("secret", -time.Minute)
		token, err := expired.GenerateToken("user-42", "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewService("other", time.Hour).GenerateToken("user-42", "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("subject-only token", func(t *testing.T) {
		raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := raw.SignedString([]byte("secret"))
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-7", claims.UserID)
	})

	t.Run("token without user", func(t *testing.T) {
		token, err := svc.GenerateToken("", "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
