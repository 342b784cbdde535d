package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentormap/mentormap-backend/internal/qa/events"
)

var keepAliveInterval = 15 * time.Second

// StreamFeed tells clients to reload the feed using Server-Sent Events (SSE)
func (h *Handler) StreamFeed(c *gin.Context) {
	h.stream(c, events.FeedChannel)
}

// StreamResponses tells clients to reload one question's responses
func (h *Handler) StreamResponses(c *gin.Context) {
	id, ok := questionID(c)
	if !ok {
		return
	}
	if _, err := h.qa.Question(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	h.stream(c, events.ResponsesChannel(id))
}

func (h *Handler) stream(c *gin.Context, channel string) {
	ctx := c.Request.Context()

	evs, closeSub, err := h.events.Subscribe(ctx, channel)
	if err != nil {
		if !errors.Is(err, events.ErrLiveUpdatesDisabled) {
			h.logger(c).Error("subscribe", zap.String("channel", channel), zap.Error(err))
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "live updates unavailable"})
		return
	}
	defer func() { _ = closeSub() }()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	c.Status(http.StatusOK)
	fmt.Fprint(c.Writer, "event: ready\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case ev, open := <-evs:
			if !open {
				return
			}
			data, _ := json.Marshal(ev)
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}
