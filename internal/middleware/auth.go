package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/flowershop-golang/internal/auth"
	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/models"
)

const identityKey = "identity"

// AuthMiddleware resolves the bearer token into an identity.
//
// No Authorization header is 401. A header that is not a valid, unexpired
// token is 403.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Resolve Bearer Token ---
		identity, err := authenticate(c.GetHeader("Authorization"), secret)
		if err != nil {
			// 2. --- Reject ---
			if errors.Is(err, common.ErrorNoCredential) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		// 3. --- Success ---
		c.Set(identityKey, identity)
		c.Next()
	}
}

// Identity returns the identity stored by AuthMiddleware.
func Identity(c *gin.Context) (models.AuthenticatedIdentity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.AuthenticatedIdentity{}, false
	}
	identity, ok := v.(models.AuthenticatedIdentity)
	return identity, ok
}

// authenticate resolves an Authorization header value. It fails with
// common.ErrorNoCredential when the header is empty and with
// common.ErrorInvalidToken for anything else that is not a valid bearer token.
func authenticate(header string, secret []byte) (models.AuthenticatedIdentity, error) {
	if header == "" {
		return models.AuthenticatedIdentity{}, common.ErrorNoCredential
	}

	scheme, tokenString, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
		return models.AuthenticatedIdentity{}, common.ErrorInvalidToken
	}

	return auth.ValidateToken(tokenString, secret)
}
