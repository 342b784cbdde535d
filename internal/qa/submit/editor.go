package submit

import (
	"sync/atomic"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/validation"
)

// QuestionEditor is the state of one "ask a question" surface.
// It is owned by a single caller; only the in-flight flag is safe for concurrent use.
type QuestionEditor struct {
	ID    string
	Title string
	Body  string
	Tags  *TagSelection

	open       bool
	submitting atomic.Bool
	errs       validation.FieldErrors
	submitErr  error
}

func NewQuestionEditor(id string) *QuestionEditor {
	return &QuestionEditor{ID: id, Tags: NewTagSelection()}
}

func (e *QuestionEditor) Open()             { e.open = true }
func (e *QuestionEditor) IsOpen() bool      { return e.open }
func (e *QuestionEditor) SetTitle(v string) { e.Title = v }
func (e *QuestionEditor) SetBody(v string)  { e.Body = v }

// ToggleTag forwards to the tag selection.
func (e *QuestionEditor) ToggleTag(tag string) bool { return e.Tags.Toggle(tag) }

// Cancel discards the draft and closes the surface.
func (e *QuestionEditor) Cancel() {
	e.reset()
	e.open = false
}

func (e *QuestionEditor) IsSubmitting() bool { return e.submitting.Load() }

// FieldErrors returns the errors of the last rejected submit.
func (e *QuestionEditor) FieldErrors() validation.FieldErrors { return e.errs }

// SubmitError returns the user-facing error of the last failed submit.
func (e *QuestionEditor) SubmitError() error { return e.submitErr }

// Draft snapshots the current fields.
func (e *QuestionEditor) Draft() domain.Draft {
	return domain.Draft{Title: e.Title, Body: e.Body, Tags: e.Tags.Tags()}
}

func (e *QuestionEditor) reset() {
	e.Title = ""
	e.Body = ""
	e.Tags.Reset()
	e.errs = nil
	e.submitErr = nil
}

// ResponseEditor is the state of the response form under a question.
type ResponseEditor struct {
	ID              string
	QuestionID      int64
	QuestionOwnerID string
	Body            string

	submitting atomic.Bool
	errs       validation.FieldErrors
	submitErr  error
}

func NewResponseEditor(id string, questionID int64, questionOwnerID string) *ResponseEditor {
	return &ResponseEditor{ID: id, QuestionID: questionID, QuestionOwnerID: questionOwnerID}
}

func (e *ResponseEditor) SetBody(v string) { e.Body = v }

func (e *ResponseEditor) IsSubmitting() bool { return e.submitting.Load() }

func (e *ResponseEditor) FieldErrors() validation.FieldErrors { return e.errs }

func (e *ResponseEditor) SubmitError() error { return e.submitErr }

func (e *ResponseEditor) Draft() domain.ResponseDraft {
	return domain.ResponseDraft{Body: e.Body}
}
