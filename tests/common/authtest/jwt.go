//go:build unit || e2e

// Package authtest mints operator tokens the way the club's identity
// service would, for exercising protected routes in tests.
package authtest

import (
	"testing"
	"time"

	"padel-club-api/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func MintOperatorToken(t *testing.T, cfg config.JWTConfig, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	require.NoError(t, err, "failed to sign test token")
	return signed
}
