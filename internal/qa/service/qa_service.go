package service

import (
	"context"
	"fmt"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/feed"
	"github.com/mentormap/mentormap-backend/internal/qa/submit"
)

type QuestionReader interface {
	List(ctx context.Context) ([]domain.Question, error)
	Get(ctx context.Context, id int64) (*domain.Question, error)
}

type ResponseReader interface {
	ListByQuestion(ctx context.Context, questionID int64) ([]domain.Response, error)
}

type TagReader interface {
	List(ctx context.Context) ([]domain.Tag, error)
}

// QAService handles the question feed, threads and submissions
type QAService struct {
	questions QuestionReader
	responses ResponseReader
	tags      TagReader
	workflow  *submit.Workflow
}

func NewQAService(questions QuestionReader, responses ResponseReader, tags TagReader, workflow *submit.Workflow) *QAService {
	return &QAService{
		questions: questions,
		responses: responses,
		tags:      tags,
		workflow:  workflow,
	}
}

// Feed loads every question and derives the filtered, sorted view.
func (s *QAService) Feed(ctx context.Context, q feed.Query) ([]domain.Question, error) {
	all, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return feed.Derive(all, q), nil
}

func (s *QAService) Question(ctx context.Context, id int64) (*domain.Question, error) {
	return s.questions.Get(ctx, id)
}

func (s *QAService) Tags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return tags, nil
}

// Responses returns the thread of an existing question, newest first.
func (s *QAService) Responses(ctx context.Context, questionID int64) ([]domain.Response, error) {
	if _, err := s.questions.Get(ctx, questionID); err != nil {
		return nil, err
	}
	out, err := s.responses.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}
	return out, nil
}

// Ask submits a filled question editor.
func (s *QAService) Ask(ctx context.Context, ed *submit.QuestionEditor) (*domain.Question, error) {
	return s.workflow.SubmitQuestion(ctx, ed)
}

// Respond builds a response editor for the question and submits body.
// The editor is returned so callers can read field errors on failure.
func (s *QAService) Respond(ctx context.Context, questionID int64, draftID, body string) (*domain.Response, *submit.ResponseEditor, error) {
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, nil, err
	}

	ed := submit.NewResponseEditor(draftID, q.ID, q.AuthorID)
	ed.SetBody(body)

	resp, err := s.workflow.SubmitResponse(ctx, ed)
	return resp, ed, err
}
