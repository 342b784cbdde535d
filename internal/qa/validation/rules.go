package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
)

// Field names used as FieldErrors keys.
const (
	FieldTitle = "title"
	FieldBody  = "body"
	FieldTags  = "tags"
)

// FieldErrors maps a field name to its error message. An empty map means valid.
type FieldErrors map[string]string

func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// Fields returns the invalid field names sorted.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidationError carries field-level errors out of a workflow.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields.Fields(), ", "))
}

// Rules holds the configurable minimums for drafts.
type Rules struct {
	TitleMin    int
	BodyMin     int
	TagsMin     int
	TagsMax     int
	ResponseMin int
}

func DefaultRules() Rules {
	return Rules{
		TitleMin:    5,
		BodyMin:     20,
		TagsMin:     1,
		TagsMax:     domain.MaxTags,
		ResponseMin: 1,
	}
}

// Question checks a question draft. Text is trimmed before length checks.
func (r Rules) Question(d domain.Draft) FieldErrors {
	errs := FieldErrors{}

	if msg := minLength("Title", d.Title, r.TitleMin); msg != "" {
		errs[FieldTitle] = msg
	}
	if msg := minLength("Question details", d.Body, r.BodyMin); msg != "" {
		errs[FieldBody] = msg
	}

	switch n := d.Tags.Len(); {
	case n < r.TagsMin:
		errs[FieldTags] = fmt.Sprintf("Select at least %d tag", r.TagsMin)
		if r.TagsMin > 1 {
			errs[FieldTags] += "s"
		}
	case r.TagsMax > 0 && n > r.TagsMax:
		errs[FieldTags] = fmt.Sprintf("Select at most %d tags", r.TagsMax)
	}

	return errs
}

// Response checks a response draft.
func (r Rules) Response(d domain.ResponseDraft) FieldErrors {
	errs := FieldErrors{}
	min := r.ResponseMin
	if min < 1 {
		min = 1
	}
	if msg := minLength("Response", d.Body, min); msg != "" {
		errs[FieldBody] = msg
	}
	return errs
}

func minLength(label, value string, min int) string {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 {
		return label + " is required"
	}
	if n < min {
		return fmt.Sprintf("%s must be at least %d characters", label, min)
	}
	return ""
}
