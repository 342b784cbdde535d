package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is the student record shown next to posts.
// UserID is the identity provider uid.
type Profile struct {
	UserID           string    `json:"user_id" db:"user_id"`
	Username         string    `json:"username" db:"username"`
	CommunityCollege string    `json:"community_college" db:"community_college"`
	CollegeMajor     string    `json:"college_major" db:"college_major"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertProfileRequest represents data for creating or replacing a profile
type UpsertProfileRequest struct {
	Username         string
	CommunityCollege string
	CollegeMajor     string
}
