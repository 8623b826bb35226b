package routes

import (
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSignTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, err := signToken(7, 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(7), claims["user_id"])
	require.Equal(t, float64(3), claims["org_id"])
	require.NotZero(t, claims["exp"])
}

func TestSignTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	token, err := signToken(1, 1)
	require.NoError(t, err)

	_, err = jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("autre-secret"), nil
	})
	require.Error(t, err)
}
