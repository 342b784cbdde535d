package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/internal/auth"
	"github.com/mentormap/mentormap-backend/internal/logging"
	"github.com/mentormap/mentormap-backend/internal/profiles/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/validation"
)

type ProfileService interface {
	Get(ctx context.Context, uid string) (*domain.Profile, error)
	Save(ctx context.Context, uid string, req domain.UpsertProfileRequest) (*domain.Profile, error)
}

type Handler struct {
	profiles ProfileService
	log      *zap.Logger
}

func New(profiles ProfileService, log *zap.Logger) *Handler {
	return &Handler{profiles: profiles, log: log}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.UpdateProfile)
}

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	p, err := h.profiles.Get(c.Request.Context(), uid)
	if errors.Is(err, domain.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context(), h.log).Error("get profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

// UpdateProfile creates or replaces the current user's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var body struct {
		Username         string `json:"username"`
		CommunityCollege string `json:"community_college"`
		CollegeMajor     string `json:"college_major"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	p, err := h.profiles.Save(c.Request.Context(), uid, domain.UpsertProfileRequest{
		Username:         body.Username,
		CommunityCollege: body.CommunityCollege,
		CollegeMajor:     body.CollegeMajor,
	})
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Error(), "fields": verr.Fields})
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context(), h.log).Error("save profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}
