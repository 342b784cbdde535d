package domain

import (
	"strconv"
	"time"
)

// MaxTags is the number of tag slots a question carries.
const MaxTags = 3

// Question is a single post in the feed.
// Tags are persisted positionally (tag1..tag3) but handled as a TagSet everywhere else.
type Question struct {
	ID         int64     `json:"id" db:"id"`
	AuthorID   string    `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	Tags       TagSet    `json:"tags"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Path is the detail view location of the question.
func (q Question) Path() string {
	return QuestionPath(q.ID)
}

// QuestionPath returns the detail view location for a question id.
func QuestionPath(id int64) string {
	return "/questions/" + strconv.FormatInt(id, 10)
}

// HasTag reports whether any tag slot equals tag exactly.
func (q Question) HasTag(tag string) bool {
	return q.Tags.Contains(tag)
}

// AnonymousName is shown for posters without a usable name.
const AnonymousName = "Anonymous"

// Tag is an entry of the externally managed tag catalog.
type Tag struct {
	ID    int64  `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}

// Response is an answer posted on a question thread.
type Response struct {
	ID              int64     `json:"id" db:"id"`
	QuestionID      int64     `json:"question_id" db:"question_id"`
	ResponderID     string    `json:"responder_id" db:"responder_id"`
	ResponderName   string    `json:"responder_name"`
	QuestionOwnerID string    `json:"question_owner_id" db:"question_owner_id"`
	Body            string    `json:"body" db:"body"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Draft is a question being composed, not yet persisted.
type Draft struct {
	Title string
	Body  string
	Tags  TagSet
}

// ResponseDraft is a response being composed.
type ResponseDraft struct {
	Body string
}

// NewQuestion is the row payload handed to the question writer.
type NewQuestion struct {
	AuthorID   string
	AuthorName string
	Title      string
	Body       string
	Tag1       *string
	Tag2       *string
	Tag3       *string
}

// NewQuestionFromDraft maps a validated draft onto a row payload.
// Tag slots are filled in selection order; unused slots stay nil.
func NewQuestionFromDraft(authorID, authorName string, d Draft) NewQuestion {
	slots := d.Tags.Slots()
	return NewQuestion{
		AuthorID:   authorID,
		AuthorName: authorName,
		Title:      d.Title,
		Body:       d.Body,
		Tag1:       slots[0],
		Tag2:       slots[1],
		Tag3:       slots[2],
	}
}

// NewResponse is the row payload handed to the response writer.
type NewResponse struct {
	QuestionID      int64
	ResponderID     string
	QuestionOwnerID string
	Body            string
}
