package delivery

import (
	"context"
	"net/http"
	"strings"

	authdomain "minwon-backend/internal/auth/domain"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenVerifier verifies a Firebase ID token. Satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identityFromToken(token))
		c.Next()
	}
}

// IdentityFrom returns the caller identity set by AuthMiddleware.
func IdentityFrom(c *gin.Context) authdomain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(authdomain.Identity); ok {
			return ident
		}
	}
	return authdomain.Identity{}
}

func identityFromToken(token *auth.Token) authdomain.Identity {
	ident := authdomain.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	if role, ok := token.Claims["role"].(string); ok {
		ident.Role = role
	}
	return ident
}
