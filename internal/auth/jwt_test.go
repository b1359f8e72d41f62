package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/models"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	id := models.AuthenticatedIdentity{ID: 7, Username: "florist"}

	tok, err := GenerateToken(id, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := ValidateToken(tok, secret)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if got != id {
		t.Fatalf("identity mismatch: got %+v want %+v", got, id)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken(models.AuthenticatedIdentity{ID: 1, Username: "u1"}, secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ValidateToken(tok, secret)
	if !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired in chain, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(models.AuthenticatedIdentity{ID: 2, Username: "u2"}, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ValidateToken(tok, []byte("wrong-secret")); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ValidateToken("not.a.jwt", []byte("k")); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}

func TestValidateToken_RejectsNoneAlg(t *testing.T) {
	t.Parallel()

	claims := Claims{
		ID:       3,
		Username: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := ValidateToken(tok, []byte("k")); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}

func TestValidateToken_MissingExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: 4, Username: "forever"}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateToken(tok, secret); !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}
