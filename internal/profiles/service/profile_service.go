package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mentormap/mentormap-backend/internal/auth"
	"github.com/mentormap/mentormap-backend/internal/profiles/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/validation"
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, uid string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

type ProfileService struct {
	store ProfileStore
	rules validation.ProfileRules
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store, rules: validation.DefaultProfileRules()}
}

func (s *ProfileService) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	return s.store.GetByUserID(ctx, uid)
}

// Save validates and stores the caller's profile.
func (s *ProfileService) Save(ctx context.Context, uid string, req domain.UpsertProfileRequest) (*domain.Profile, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.CommunityCollege = strings.TrimSpace(req.CommunityCollege)
	req.CollegeMajor = strings.TrimSpace(req.CollegeMajor)

	if errs := s.rules.Profile(req.Username, req.CommunityCollege, req.CollegeMajor); !errs.Valid() {
		return nil, &validation.ValidationError{Fields: errs}
	}

	p := &domain.Profile{
		UserID:           uid,
		Username:         req.Username,
		CommunityCollege: req.CommunityCollege,
		CollegeMajor:     req.CollegeMajor,
	}
	if err := s.store.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AuthorName returns the profile username, or "" when there is none.
// Store failures are returned so callers do not post under a wrong name.
func (s *ProfileService) AuthorName(ctx context.Context, id auth.Identity) (string, error) {
	p, err := s.store.GetByUserID(ctx, id.UID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load profile %s: %w", id.UID, err)
	}
	return p.Username, nil
}
