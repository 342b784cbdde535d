package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
)

const pqForeignKeyViolation = "23503"

// ResponseRepository provides persistence operations for responses
type ResponseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// ListByQuestion returns a question's responses, most recent first.
// Responder names come from profiles; responders without one show as "Anonymous".
func (r *ResponseRepository) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Response, error) {
	const q = `
SELECT r.id, r.question_id, r.responder_id, r.question_owner_id, r.body, r.created_at,
       COALESCE(p.username, '')
FROM responses r
LEFT JOIN profiles p ON p.user_id = r.responder_id
WHERE r.question_id = $1
ORDER BY r.created_at DESC, r.id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Response, 0, 16)
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(&resp.ID, &resp.QuestionID, &resp.ResponderID, &resp.QuestionOwnerID,
			&resp.Body, &resp.CreatedAt, &resp.ResponderName); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		if resp.ResponderName == "" {
			resp.ResponderName = domain.AnonymousName
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return out, nil
}

// InsertResponse stores a single response row.
// A missing parent question is reported as domain.ErrQuestionNotFound.
func (r *ResponseRepository) InsertResponse(ctx context.Context, nr domain.NewResponse) (*domain.Response, error) {
	const q = `
INSERT INTO responses (question_id, responder_id, question_owner_id, body)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`
	resp := domain.Response{
		QuestionID:      nr.QuestionID,
		ResponderID:     nr.ResponderID,
		QuestionOwnerID: nr.QuestionOwnerID,
		Body:            nr.Body,
	}

	err := r.db.QueryRowContext(ctx, q, nr.QuestionID, nr.ResponderID, nr.QuestionOwnerID, nr.Body).
		Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pqForeignKeyViolation {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to insert response: %w", err)
	}
	return &resp, nil
}
