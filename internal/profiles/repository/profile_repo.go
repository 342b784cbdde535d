package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mentormap/mentormap-backend/internal/profiles/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves a profile by the identity uid
func (r *ProfileRepository) GetByUserID(ctx context.Context, uid string) (*domain.Profile, error) {
	query := `
		SELECT user_id, username, community_college, college_major, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&p.UserID,
		&p.Username,
		&p.CommunityCollege,
		&p.CollegeMajor,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Upsert creates the profile or replaces its editable fields
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, username, community_college, college_major)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    community_college = EXCLUDED.community_college,
		    college_major = EXCLUDED.college_major,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query, p.UserID, p.Username, p.CommunityCollege, p.CollegeMajor).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}
