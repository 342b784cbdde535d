package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderIdentity trusts X-User-Id / X-User-Email / X-User-Name headers.
// Requests without X-User-Id stay anonymous.
// Use this ONLY for development/testing.
func HeaderIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid != "" {
			SetIdentity(c, Identity{
				UID:         uid,
				Email:       strings.TrimSpace(c.GetHeader("X-User-Email")),
				DisplayName: strings.TrimSpace(c.GetHeader("X-User-Name")),
			})
		}
		c.Next()
	}
}
