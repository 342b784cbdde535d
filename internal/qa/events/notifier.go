// Package events publishes "reload" notifications for the feed and for
// response threads, and lets SSE handlers subscribe to them.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	FeedChannel            = "mentormap:feed"
	responsesChannelPrefix = "mentormap:questions:" // mentormap:questions:{id}:responses

	TypeFeedChanged      = "feed_changed"
	TypeResponsesChanged = "responses_changed"
)

// ResponsesChannel is the channel for one question's response thread.
func ResponsesChannel(questionID int64) string {
	return responsesChannelPrefix + strconv.FormatInt(questionID, 10) + ":responses"
}

type Event struct {
	Type       string    `json:"type"`
	QuestionID int64     `json:"question_id,omitempty"`
	At         time.Time `json:"at"`
}

// Subscriber streams events published on a channel until closed.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan Event, func() error, error)
}

// Notifier publishes refresh events over Redis Pub/Sub.
type Notifier struct {
	client *redis.Client
	now    func() time.Time
}

func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client, now: time.Now}
}

func (n *Notifier) FeedChanged(ctx context.Context) error {
	return n.publish(ctx, FeedChannel, Event{Type: TypeFeedChanged, At: n.now().UTC()})
}

func (n *Notifier) ResponsesChanged(ctx context.Context, questionID int64) error {
	return n.publish(ctx, ResponsesChannel(questionID), Event{
		Type:       TypeResponsesChanged,
		QuestionID: questionID,
		At:         n.now().UTC(),
	})
}

func (n *Notifier) publish(ctx context.Context, channel string, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := n.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Type, err)
	}
	return nil
}

// Subscribe confirms the subscription before returning so no event
// published afterwards is missed.
func (n *Notifier) Subscribe(ctx context.Context, channel string) (<-chan Event, func() error, error) {
	pubsub := n.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, pubsub.Close, nil
}

// ErrLiveUpdatesDisabled is returned by Noop.Subscribe.
var ErrLiveUpdatesDisabled = errors.New("live updates are disabled")

// Noop drops every event. Used when Redis is not configured.
type Noop struct{}

func (Noop) FeedChanged(context.Context) error             { return nil }
func (Noop) ResponsesChanged(context.Context, int64) error { return nil }

func (Noop) Subscribe(context.Context, string) (<-chan Event, func() error, error) {
	return nil, nil, ErrLiveUpdatesDisabled
}
