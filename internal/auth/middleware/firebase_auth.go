package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	mmauth "github.com/mentormap/mentormap-backend/internal/auth"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info.
// With required=false a missing token lets the request through anonymously,
// but a token that fails verification is always rejected.
func FirebaseAuthMiddleware(verifier TokenVerifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
				return
			}
			c.Next()
			return
		}

		decodedToken, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		id := mmauth.Identity{UID: decodedToken.UID}
		if email, ok := decodedToken.Claims["email"].(string); ok {
			id.Email = email
		}
		if name, ok := decodedToken.Claims["name"].(string); ok {
			id.DisplayName = name
		}
		mmauth.SetIdentity(c, id)

		// Store the full token for access to other claims if needed
		c.Set("firebase_token", decodedToken)

		c.Next()
	}
}

// RequireIdentity rejects requests that no earlier middleware authenticated.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := mmauth.FromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			return
		}
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
