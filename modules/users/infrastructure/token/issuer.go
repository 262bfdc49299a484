// Package token issues signed session tokens for authenticated users.
// Verification happens at the gateway; this service only signs.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// ErrConfigMissing is returned when the signing secret or expiry is not
// configured. This surfaces at issuance time, not at startup: the service
// can run read-only command paths without token configuration.
var ErrConfigMissing = errors.New("token signing secret or expiry is not configured")

// Config holds the static signing configuration.
type Config struct {
	Secret    string
	ExpiresIn time.Duration
}

// Claims is the token payload: subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs session tokens with HS256.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue signs a token bound to (userID, email).
func (i *Issuer) Issue(userID types.UserID, email string) (string, error) {
	if i.cfg.Secret == "" || i.cfg.ExpiresIn <= 0 {
		return "", ErrConfigMissing
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.ExpiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
