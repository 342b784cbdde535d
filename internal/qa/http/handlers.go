package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/internal/logging"
	"github.com/mentormap/mentormap-backend/internal/qa/domain"
	"github.com/mentormap/mentormap-backend/internal/qa/feed"
	"github.com/mentormap/mentormap-backend/internal/qa/submit"
	"github.com/mentormap/mentormap-backend/internal/qa/validation"
)

// ListTags returns the tag catalog
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.qa.Tags(c.Request.Context())
	if err != nil {
		h.logger(c).Error("list tags", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load tags"})
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tags": tags})
}

// ListQuestions returns the derived feed for ?tag=&q=&sort=
func (h *Handler) ListQuestions(c *gin.Context) {
	q := feed.Query{
		Tag:    c.DefaultQuery("tag", feed.AllTags),
		Search: c.Query("q"),
		Sort:   feed.ParseSort(c.Query("sort")),
	}

	questions, err := h.qa.Feed(c.Request.Context(), q)
	if err != nil {
		h.logger(c).Error("list questions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"questions": viewsOf(questions),
		"query":     gin.H{"tag": q.Tag, "q": q.Search, "sort": q.Sort},
	})
}

func (h *Handler) GetQuestion(c *gin.Context) {
	id, ok := questionID(c)
	if !ok {
		return
	}

	q, err := h.qa.Question(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "question": viewOf(*q)})
}

// CreateQuestion accepts {title, body, tags[]}
func (h *Handler) CreateQuestion(c *gin.Context) {
	var body struct {
		Title string   `json:"title"`
		Body  string   `json:"body"`
		Tags  []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	tags := domain.NewTagSet(body.Tags...)
	if tags.Len() > domain.MaxTags {
		h.writeError(c, &validation.ValidationError{Fields: validation.FieldErrors{
			validation.FieldTags: fmt.Sprintf("Select at most %d tags", domain.MaxTags),
		}})
		return
	}
	if fields, err := h.unknownTags(c, tags); err != nil {
		h.writeError(c, err)
		return
	} else if !fields.Valid() {
		h.writeError(c, &validation.ValidationError{Fields: fields})
		return
	}

	ed := submit.NewQuestionEditor(draftID(c))
	ed.Open()
	ed.SetTitle(body.Title)
	ed.SetBody(body.Body)
	for _, t := range tags.Titles() {
		ed.ToggleTag(t)
	}

	q, err := h.qa.Ask(c.Request.Context(), ed)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Location", q.Path())
	c.JSON(http.StatusCreated, gin.H{"ok": true, "question": viewOf(*q)})
}

func (h *Handler) ListResponses(c *gin.Context) {
	id, ok := questionID(c)
	if !ok {
		return
	}

	responses, err := h.qa.Responses(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if responses == nil {
		responses = []domain.Response{}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "responses": responses})
}

// CreateResponse accepts {body}
func (h *Handler) CreateResponse(c *gin.Context) {
	id, ok := questionID(c)
	if !ok {
		return
	}

	var body struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	resp, _, err := h.qa.Respond(c.Request.Context(), id, draftID(c), body.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "response": resp})
}

func (h *Handler) unknownTags(c *gin.Context, tags domain.TagSet) (validation.FieldErrors, error) {
	if tags.Len() == 0 {
		return nil, nil
	}
	catalog, err := h.qa.Tags(c.Request.Context())
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(catalog))
	for _, t := range catalog {
		known[t.Title] = struct{}{}
	}

	var unknown []string
	for _, t := range tags.Titles() {
		if _, ok := known[t]; !ok {
			unknown = append(unknown, t)
		}
	}
	if len(unknown) == 0 {
		return nil, nil
	}
	return validation.FieldErrors{
		validation.FieldTags: "Unknown tag: " + strings.Join(unknown, ", "),
	}, nil
}

// writeError maps workflow and lookup errors onto the JSON envelope.
func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
	case errors.Is(err, domain.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "question not found"})
	case errors.Is(err, domain.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrSubmissionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
	default:
		h.logger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}

func (h *Handler) logger(c *gin.Context) *zap.Logger {
	return logging.FromContext(c.Request.Context(), h.log)
}

func questionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid question id"})
		return 0, false
	}
	return id, true
}

func draftID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(DraftIDHeader)); id != "" {
		return id
	}
	return uuid.NewString()
}
