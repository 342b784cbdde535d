package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// Identity is the authenticated principal behind a request.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// IdentitySource answers "who is the current user", if anyone.
type IdentitySource interface {
	CurrentUser(ctx context.Context) (Identity, bool)
}

type identityKey struct{}

// WithIdentity stores id in ctx. Blank uids are ignored.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	id.UID = strings.TrimSpace(id.UID)
	if id.UID == "" {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.UID == "" {
		return Identity{}, false
	}
	return id, true
}

// ContextSource reads the identity placed on the request context.
type ContextSource struct{}

func (ContextSource) CurrentUser(ctx context.Context) (Identity, bool) {
	return FromContext(ctx)
}

// UserFirebaseUID extracts the Firebase UID from the Gin context.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// SetIdentity publishes id on both the gin and the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(CtxFirebaseUID, id.UID)
	if id.Email != "" {
		c.Set(CtxEmail, id.Email)
	}
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
}
