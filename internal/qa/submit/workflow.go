// Package submit holds the editing surfaces and the workflows that turn
// drafts into stored questions and responses.
package submit

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/internal/auth"
	"github.com/mentormap/mentormap-backend/internal/logging"
	"github.com/mentormap/mentormap-backend/internal/qa/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/validation"
)

type QuestionWriter interface {
	InsertQuestion(ctx context.Context, q domain.NewQuestion) (*domain.Question, error)
}

type ResponseWriter interface {
	InsertResponse(ctx context.Context, r domain.NewResponse) (*domain.Response, error)
}

// Refresher is told when a dependent view must reload.
type Refresher interface {
	FeedChanged(ctx context.Context) error
	ResponsesChanged(ctx context.Context, questionID int64) error
}

// AuthorNamer resolves the display name stored on new posts.
// "" with a nil error means the user has no name on file.
type AuthorNamer interface {
	AuthorName(ctx context.Context, id auth.Identity) (string, error)
}

type Deps struct {
	Identity  auth.IdentitySource
	Questions QuestionWriter
	Responses ResponseWriter
	Refresher Refresher
	Guard     Guard
	Names     AuthorNamer
	Rules     validation.Rules
	Logger    *zap.Logger
}

type Workflow struct {
	identity  auth.IdentitySource
	questions QuestionWriter
	responses ResponseWriter
	refresher Refresher
	guard     Guard
	names     AuthorNamer
	rules     validation.Rules
	log       *zap.Logger
}

func NewWorkflow(d Deps) *Workflow {
	w := &Workflow{
		identity:  d.Identity,
		questions: d.Questions,
		responses: d.Responses,
		refresher: d.Refresher,
		guard:     d.Guard,
		names:     d.Names,
		rules:     d.Rules,
		log:       d.Logger,
	}
	if w.identity == nil {
		w.identity = auth.ContextSource{}
	}
	if w.guard == nil {
		w.guard = NewMemoryGuard()
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}
	if w.rules == (validation.Rules{}) {
		w.rules = validation.DefaultRules()
	}
	return w
}

// SubmitQuestion validates the editor's draft and stores it as a question.
// On failure the draft is left untouched; on success it is cleared, the
// surface closed and the feed refreshed once.
func (w *Workflow) SubmitQuestion(ctx context.Context, ed *QuestionEditor) (*domain.Question, error) {
	if !ed.submitting.CompareAndSwap(false, true) {
		return nil, domain.ErrSubmissionInFlight
	}
	defer ed.submitting.Store(false)

	id, ok := w.identity.CurrentUser(ctx)
	if !ok {
		ed.submitErr = domain.ErrNotAuthenticated
		return nil, domain.ErrNotAuthenticated
	}

	draft := ed.Draft()
	if errs := w.rules.Question(draft); !errs.Valid() {
		ed.errs = errs
		ed.submitErr = nil
		return nil, &validation.ValidationError{Fields: errs}
	}
	ed.errs = nil

	release, err := w.guard.Acquire(ctx, guardKey("question", id.UID, ed.ID))
	if err != nil {
		return nil, w.guardFailure(ctx, err)
	}
	defer release()

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Body = strings.TrimSpace(draft.Body)
	name, err := w.authorName(ctx, id)
	if err != nil {
		logging.FromContext(ctx, w.log).Error("author name lookup failed",
			zap.String("user_id", id.UID), zap.Error(err))
		ed.submitErr = domain.ErrSubmissionFailed
		return nil, domain.ErrSubmissionFailed
	}
	row := domain.NewQuestionFromDraft(id.UID, name, draft)

	q, err := w.questions.InsertQuestion(ctx, row)
	if err != nil {
		logging.FromContext(ctx, w.log).Error("insert question failed",
			zap.String("user_id", id.UID), zap.Error(err))
		ed.submitErr = domain.ErrSubmissionFailed
		return nil, domain.ErrSubmissionFailed
	}

	ed.reset()
	ed.open = false
	w.feedChanged(ctx)

	return q, nil
}

// SubmitResponse stores the editor's body as a response to its question.
func (w *Workflow) SubmitResponse(ctx context.Context, ed *ResponseEditor) (*domain.Response, error) {
	if !ed.submitting.CompareAndSwap(false, true) {
		return nil, domain.ErrSubmissionInFlight
	}
	defer ed.submitting.Store(false)

	id, ok := w.identity.CurrentUser(ctx)
	if !ok {
		ed.submitErr = domain.ErrNotAuthenticated
		return nil, domain.ErrNotAuthenticated
	}

	if errs := w.rules.Response(ed.Draft()); !errs.Valid() {
		ed.errs = errs
		ed.submitErr = nil
		return nil, &validation.ValidationError{Fields: errs}
	}
	ed.errs = nil

	release, err := w.guard.Acquire(ctx, guardKey("response", id.UID, ed.ID))
	if err != nil {
		return nil, w.guardFailure(ctx, err)
	}
	defer release()

	name, err := w.responderName(ctx, id)
	if err != nil {
		logging.FromContext(ctx, w.log).Error("responder name lookup failed",
			zap.String("user_id", id.UID), zap.Error(err))
		ed.submitErr = domain.ErrSubmissionFailed
		return nil, domain.ErrSubmissionFailed
	}

	r, err := w.responses.InsertResponse(ctx, domain.NewResponse{
		QuestionID:      ed.QuestionID,
		ResponderID:     id.UID,
		QuestionOwnerID: ed.QuestionOwnerID,
		Body:            strings.TrimSpace(ed.Body),
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			ed.submitErr = domain.ErrQuestionNotFound
			return nil, domain.ErrQuestionNotFound
		}
		logging.FromContext(ctx, w.log).Error("insert response failed",
			zap.String("user_id", id.UID), zap.Int64("question_id", ed.QuestionID), zap.Error(err))
		ed.submitErr = domain.ErrSubmissionFailed
		return nil, domain.ErrSubmissionFailed
	}

	r.ResponderName = name
	ed.Body = ""
	ed.submitErr = nil
	if w.refresher != nil {
		if err := w.refresher.ResponsesChanged(ctx, ed.QuestionID); err != nil {
			logging.FromContext(ctx, w.log).Warn("response refresh not published", zap.Error(err))
		}
	}

	return r, nil
}

func (w *Workflow) feedChanged(ctx context.Context) {
	if w.refresher == nil {
		return
	}
	if err := w.refresher.FeedChanged(ctx); err != nil {
		logging.FromContext(ctx, w.log).Warn("feed refresh not published", zap.Error(err))
	}
}

func (w *Workflow) guardFailure(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrSubmissionInFlight) {
		return domain.ErrSubmissionInFlight
	}
	logging.FromContext(ctx, w.log).Error("submit guard unavailable", zap.Error(err))
	return domain.ErrSubmissionFailed
}

func (w *Workflow) profileName(ctx context.Context, id auth.Identity) (string, error) {
	if w.names == nil {
		return "", nil
	}
	name, err := w.names.AuthorName(ctx, id)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

func (w *Workflow) authorName(ctx context.Context, id auth.Identity) (string, error) {
	name, err := w.profileName(ctx, id)
	if err != nil || name != "" {
		return name, err
	}
	return FallbackName(id), nil
}

// responderName matches what the response listing shows: the profile
// username, or "Anonymous" without a profile.
func (w *Workflow) responderName(ctx context.Context, id auth.Identity) (string, error) {
	name, err := w.profileName(ctx, id)
	if err != nil || name != "" {
		return name, err
	}
	return domain.AnonymousName, nil
}

// FallbackName picks a display name from the identity alone.
func FallbackName(id auth.Identity) string {
	if name := strings.TrimSpace(id.DisplayName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(id.Email, "@"); ok && local != "" {
		return local
	}
	return domain.AnonymousName
}

func guardKey(kind, uid, draftID string) string {
	if draftID == "" {
		draftID = "default"
	}
	return kind + ":" + uid + ":" + draftID
}
