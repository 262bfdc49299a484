package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
	"github.com/MohammadDAlil0/scase-food-go/modules/users/infrastructure/token"
)

func TestIssuer_Issue(t *testing.T) {
	issuer := token.NewIssuer(token.Config{
		Secret:    "test-signing-secret",
		ExpiresIn: time.Hour,
	})
	userID := types.NewUserID()

	signed, err := issuer.Issue(userID, "carol@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	var claims token.Claims
	parsed, err := jwt.ParseWithClaims(signed, &claims, func(t *jwt.Token) (any, error) {
		return []byte("test-signing-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "carol@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestIssuer_Issue_WrongSecretFailsVerification(t *testing.T) {
	issuer := token.NewIssuer(token.Config{
		Secret:    "test-signing-secret",
		ExpiresIn: time.Hour,
	})

	signed, err := issuer.Issue(types.NewUserID(), "carol@example.com")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &token.Claims{}, func(t *jwt.Token) (any, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestIssuer_Issue_MissingConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  token.Config
	}{
		{"no secret", token.Config{ExpiresIn: time.Hour}},
		{"no expiry", token.Config{Secret: "test-signing-secret"}},
		{"nothing", token.Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := token.NewIssuer(tt.cfg)
			_, err := issuer.Issue(types.NewUserID(), "carol@example.com")
			assert.ErrorIs(t, err, token.ErrConfigMissing)
		})
	}
}
