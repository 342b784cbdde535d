package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
)

// TagRepository reads and seeds the tag catalog.
type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Tag])
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	return tags, nil
}

// Seed inserts titles missing from the catalog and returns how many were added.
func (r *TagRepository) Seed(ctx context.Context, titles []string) (int, error) {
	added := 0
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, title := range titles {
			title = strings.TrimSpace(title)
			if title == "" {
				continue
			}
			tag, err := tx.Exec(ctx, `INSERT INTO tags (title) VALUES ($1) ON CONFLICT (title) DO NOTHING`, title)
			if err != nil {
				return fmt.Errorf("insert tag %q: %w", title, err)
			}
			added += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
