package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/models"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

// Claims carries the identity inside the token.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for identity.
func GenerateToken(identity models.AuthenticatedIdentity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:       identity.ID,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses tokenString and returns the identity it carries.
// Any failure (bad signature, expired, malformed) wraps common.ErrorInvalidToken.
func ValidateToken(tokenString string, secret []byte) (models.AuthenticatedIdentity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Only accept the algorithm we sign with.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return models.AuthenticatedIdentity{}, fmt.Errorf("%w: %w", common.ErrorInvalidToken, err)
	}

	if !token.Valid || claims.ID <= 0 {
		return models.AuthenticatedIdentity{}, common.ErrorInvalidToken
	}

	return models.AuthenticatedIdentity{ID: claims.ID, Username: claims.Username}, nil
}
