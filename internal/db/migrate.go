package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Schema creates every table the service reads or writes. Statements are idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS tags (
	id    BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS profiles (
	user_id           TEXT PRIMARY KEY,
	username          TEXT NOT NULL,
	community_college TEXT NOT NULL,
	college_major     TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS questions (
	id          BIGSERIAL PRIMARY KEY,
	author_id   TEXT NOT NULL,
	author_name TEXT NOT NULL,
	title       TEXT NOT NULL,
	body        TEXT NOT NULL,
	tag1        TEXT,
	tag2        TEXT,
	tag3        TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS responses (
	id                BIGSERIAL PRIMARY KEY,
	question_id       BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
	responder_id      TEXT NOT NULL,
	question_owner_id TEXT NOT NULL,
	body              TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS responses_question_created_idx ON responses (question_id, created_at DESC)`,
}

// Migrate applies Schema in a single transaction.
func (d *DB) Migrate(ctx context.Context) error {
	return pgx.BeginFunc(ctx, d.Pool, func(tx pgx.Tx) error {
		for i, stmt := range Schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
