// Package feed derives the rendered question list from the fetched rows.
package feed

import (
	"sort"
	"strings"

	"github.com/mentormap/mentormap-backend/internal/qa/domain"
)

// AllTags disables the tag filter.
const AllTags = "all"

type SortMode string

const (
	SortLatest  SortMode = "latest"
	SortPopular SortMode = "popular"
)

// ParseSort maps a query value onto a sort mode, defaulting to latest.
func ParseSort(v string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(v))) {
	case SortPopular:
		return SortPopular
	default:
		return SortLatest
	}
}

// Query is the user-controlled part of the feed view.
type Query struct {
	Tag    string
	Search string
	Sort   SortMode
}

func (q Query) matchesTag(question domain.Question) bool {
	if q.Tag == "" || q.Tag == AllTags {
		return true
	}
	return question.HasTag(q.Tag)
}

func matchesSearch(question domain.Question, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(question.Title), term) ||
		strings.Contains(strings.ToLower(question.Body), term)
}

// Derive filters questions by tag and search term and orders the survivors.
// The input slice is never modified and the result is never nil.
func Derive(questions []domain.Question, q Query) []domain.Question {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Question, 0, len(questions))
	for _, question := range questions {
		if q.matchesTag(question) && matchesSearch(question, term) {
			out = append(out, question)
		}
	}

	switch q.Sort {
	case SortPopular:
		// No popularity metric exists yet; oldest first stands in for it.
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	default:
		sort.SliceStable(out, func(i, j int) bool { return newer(out[i], out[j]) })
	}
	return out
}

func newer(a, b domain.Question) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
