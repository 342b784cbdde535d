package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentormap/mentormap-backend/internal/auth"
	"github.com/mentormap/mentormap-backend/internal/qa/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/feed"
	"github.com/mentormap/mentormap-backend/internal/qa/submit"
)

type memStore struct {
	questions []domain.Question
	responses []domain.Response
	tags      []domain.Tag
	listErr   error
}

func (m *memStore) List(context.Context) ([]domain.Question, error) {
	return m.questions, m.listErr
}

func (m *memStore) Get(_ context.Context, id int64) (*domain.Question, error) {
	for _, q := range m.questions {
		if q.ID == id {
			q := q
			return &q, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

func (m *memStore) ListByQuestion(_ context.Context, id int64) ([]domain.Response, error) {
	var out []domain.Response
	for _, r := range m.responses {
		if r.QuestionID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) InsertQuestion(_ context.Context, nq domain.NewQuestion) (*domain.Question, error) {
	q := domain.Question{
		ID:         int64(len(m.questions) + 1),
		AuthorID:   nq.AuthorID,
		AuthorName: nq.AuthorName,
		Title:      nq.Title,
		Body:       nq.Body,
		Tags:       domain.TagSetFromSlots(nq.Tag1, nq.Tag2, nq.Tag3),
	}
	m.questions = append(m.questions, q)
	return &q, nil
}

func (m *memStore) InsertResponse(_ context.Context, nr domain.NewResponse) (*domain.Response, error) {
	r := domain.Response{ID: int64(len(m.responses) + 1), QuestionID: nr.QuestionID, ResponderID: nr.ResponderID, QuestionOwnerID: nr.QuestionOwnerID, Body: nr.Body}
	m.responses = append(m.responses, r)
	return &r, nil
}

type tagList []domain.Tag

func (t tagList) List(context.Context) ([]domain.Tag, error) { return t, nil }

func newService(store *memStore) *QAService {
	wf := submit.NewWorkflow(submit.Deps{Questions: store, Responses: store})
	return NewQAService(store, store, tagList{{ID: 1, Title: "Classes"}}, wf)
}

func signedInCtx() context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UID: "uid-1", DisplayName: "Sam"})
}

func TestQAService_Feed(t *testing.T) {
	store := &memStore{questions: []domain.Question{
		{ID: 1, Title: "Math placement", Tags: domain.NewTagSet("Classes")},
		{ID: 2, Title: "Internship fair", Tags: domain.NewTagSet("Internships")},
		{ID: 3, Title: "Chem lab", Tags: domain.NewTagSet("Classes")},
	}}
	svc := newService(store)

	got, err := svc.Feed(context.Background(), feed.Query{Tag: "Classes", Sort: feed.SortLatest})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	store.listErr = errors.New("db down")
	_, err = svc.Feed(context.Background(), feed.Query{})
	assert.ErrorContains(t, err, "load feed")
}

func TestQAService_AskThenFeed(t *testing.T) {
	store := &memStore{}
	svc := newService(store)

	ed := submit.NewQuestionEditor("d1")
	ed.SetTitle("UC Berkeley Transfer")
	ed.SetBody("Which IGETC courses should I take first?")
	ed.ToggleTag("Transfer")

	q, err := svc.Ask(signedInCtx(), ed)
	require.NoError(t, err)
	assert.Equal(t, "Sam", q.AuthorName)

	got, err := svc.Feed(context.Background(), feed.Query{Search: "berkeley"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, q.ID, got[0].ID)
}

func TestQAService_Respond(t *testing.T) {
	store := &memStore{questions: []domain.Question{{ID: 4, AuthorID: "owner-1", Title: "Parking"}}}
	svc := newService(store)

	resp, ed, err := svc.Respond(signedInCtx(), 4, "", "Lot C is free after 5pm")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", resp.QuestionOwnerID)
	assert.Equal(t, "", ed.Body)

	thread, err := svc.Responses(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, thread, 1)

	_, _, err = svc.Respond(signedInCtx(), 99, "", "hello")
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	_, err = svc.Responses(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestQAService_Tags(t *testing.T) {
	svc := newService(&memStore{})
	tags, err := svc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: 1, Title: "Classes"}}, tags)
}
