package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotifier(t *testing.T) (*Notifier, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	n := NewNotifier(client)
	n.now = func() time.Time { return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC) }
	return n, mr
}

func TestResponsesChannel(t *testing.T) {
	assert.Equal(t, "mentormap:questions:42:responses", ResponsesChannel(42))
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	n, _ := setupNotifier(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, closeFeed, err := n.Subscribe(ctx, FeedChannel)
	require.NoError(t, err)
	defer closeFeed()

	thread, closeThread, err := n.Subscribe(ctx, ResponsesChannel(7))
	require.NoError(t, err)
	defer closeThread()

	require.NoError(t, n.FeedChanged(ctx))
	require.NoError(t, n.ResponsesChanged(ctx, 7))

	select {
	case ev := <-feed:
		assert.Equal(t, TypeFeedChanged, ev.Type)
		assert.Equal(t, n.now(), ev.At)
	case <-time.After(2 * time.Second):
		t.Fatal("no feed event")
	}

	select {
	case ev := <-thread:
		assert.Equal(t, TypeResponsesChanged, ev.Type)
		assert.Equal(t, int64(7), ev.QuestionID)
	case <-time.After(2 * time.Second):
		t.Fatal("no response event")
	}
}

func TestNotifier_PublishFailure(t *testing.T) {
	n, mr := setupNotifier(t)
	mr.Close()

	err := n.FeedChanged(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), TypeFeedChanged)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.FeedChanged(context.Background()))
	assert.NoError(t, n.ResponsesChanged(context.Background(), 1))

	ch, _, err := n.Subscribe(context.Background(), FeedChannel)
	assert.ErrorIs(t, err, ErrLiveUpdatesDisabled)
	assert.Nil(t, ch)
}
