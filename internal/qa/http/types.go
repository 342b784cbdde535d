package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/events"
	"github.com/mentormap/mentormap-backend/internal/qa/feed"
	"github.com/mentormap/mentormap-backend/internal/qa/submit"
)

// DraftIDHeader lets a client tie retries of the same form to one draft.
const DraftIDHeader = "X-Draft-Id"

type QAService interface {
	Feed(ctx context.Context, q feed.Query) ([]domain.Question, error)
	Question(ctx context.Context, id int64) (*domain.Question, error)
	Tags(ctx context.Context) ([]domain.Tag, error)
	Responses(ctx context.Context, questionID int64) ([]domain.Response, error)
	Ask(ctx context.Context, ed *submit.QuestionEditor) (*domain.Question, error)
	Respond(ctx context.Context, questionID int64, draftID, body string) (*domain.Response, *submit.ResponseEditor, error)
}

type Handler struct {
	qa     QAService
	events events.Subscriber
	log    *zap.Logger
}

func New(qa QAService, subscriber events.Subscriber, log *zap.Logger) *Handler {
	if subscriber == nil {
		subscriber = events.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{qa: qa, events: subscriber, log: log}
}

type questionView struct {
	domain.Question
	Path string `json:"path"`
}

func viewOf(q domain.Question) questionView {
	return questionView{Question: q, Path: q.Path()}
}

func viewsOf(qs []domain.Question) []questionView {
	out := make([]questionView, 0, len(qs))
	for _, q := range qs {
		out = append(out, viewOf(q))
	}
	return out
}
