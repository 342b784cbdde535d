package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mentormap/mentormap-backend/internal/auth"
)

func TestWriteLimiter_Allow(t *testing.T) {
	l := NewWriteLimiter(60, 2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("user:a"))
	assert.True(t, l.Allow("user:a"))
	assert.False(t, l.Allow("user:a"), "burst exhausted")
	assert.True(t, l.Allow("user:b"), "buckets are per key")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("user:a"), "one token per second refills")
}

func TestWriteLimiter_EvictsIdle(t *testing.T) {
	l := NewWriteLimiter(60, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("user:a")
	now = now.Add(limiterIdleTTL + time.Minute)
	l.Allow("user:b")

	assert.NotContains(t, l.visitors, "user:a")
	assert.Contains(t, l.visitors, "user:b")
}

func TestWriteLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewWriteLimiter(1, 1)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-User-Id"); uid != "" {
			auth.SetIdentity(c, auth.Identity{UID: uid})
		}
	})
	r.Use(l.Middleware())
	r.POST("/questions", func(c *gin.Context) { c.Status(http.StatusCreated) })

	post := func(uid string) int {
		req := httptest.NewRequest(http.MethodPost, "/questions", nil)
		req.Header.Set("X-User-Id", uid)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, post("alice"))
	assert.Equal(t, http.StatusTooManyRequests, post("alice"))
	assert.Equal(t, http.StatusCreated, post("bob"))
}
