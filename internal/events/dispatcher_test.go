package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFillsIDAndTimestamp(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got Event
	d.Subscribe(EventRequestSubmitted, func(ctx context.Context, event Event) error {
		got = event
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRequestSubmitted}))
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestPublishReachesAllHandlersDespiteErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventReviewStateChanged, func(ctx context.Context, event Event) error {
		calls++
		return errors.New("first handler failed")
	})
	d.Subscribe(EventReviewStateChanged, func(ctx context.Context, event Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventReviewStateChanged}))
	assert.Equal(t, 2, calls)
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventMemberJoined, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventMemberLeft}))
	assert.False(t, called)
}
