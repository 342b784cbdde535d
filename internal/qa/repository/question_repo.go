package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
)

// QuestionRepository provides persistence operations for questions
type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, author_id, author_name, title, body, tag1, tag2, tag3, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (domain.Question, error) {
	var q domain.Question
	var tag1, tag2, tag3 sql.NullString
	if err := row.Scan(&q.ID, &q.AuthorID, &q.AuthorName, &q.Title, &q.Body, &tag1, &tag2, &tag3, &q.CreatedAt); err != nil {
		return q, err
	}
	q.Tags = domain.TagSetFromSlots(nullable(tag1), nullable(tag2), nullable(tag3))
	return q, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// List returns every question, newest first.
func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	q := `SELECT ` + questionColumns + ` FROM questions ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Question, 0, 32)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		out = append(out, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return out, nil
}

// Get returns one question or domain.ErrQuestionNotFound.
func (r *QuestionRepository) Get(ctx context.Context, id int64) (*domain.Question, error) {
	q := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	question, err := scanQuestion(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// InsertQuestion stores a single question row and returns it with its id and timestamp.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, nq domain.NewQuestion) (*domain.Question, error) {
	const q = `
INSERT INTO questions (author_id, author_name, title, body, tag1, tag2, tag3)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + questionColumns

	question, err := scanQuestion(r.db.QueryRowContext(ctx, q,
		nq.AuthorID, nq.AuthorName, nq.Title, nq.Body, nq.Tag1, nq.Tag2, nq.Tag3))
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}
	return &question, nil
}
