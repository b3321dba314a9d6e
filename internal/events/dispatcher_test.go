package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventJobCreated, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventJobCreated})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "e1", received[0].ID)
}

func TestDispatcher_OnlyMatchingTypeReceives(t *testing.T) {
	d := NewInMemoryDispatcher()

	jobCalls, contactCalls := 0, 0
	d.Subscribe(EventJobCreated, func(_ context.Context, _ Event) error {
		jobCalls++
		return nil
	})
	d.Subscribe(EventContactSubmitted, func(_ context.Context, _ Event) error {
		contactCalls++
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventContactSubmitted})

	assert.Equal(t, 0, jobCalls)
	assert.Equal(t, 1, contactCalls)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	secondRan := false
	d.Subscribe(EventApplicationSubmitted, func(_ context.Context, _ Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventApplicationSubmitted, func(_ context.Context, _ Event) error {
		secondRan = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventApplicationSubmitted})
	assert.NoError(t, err)
	assert.True(t, secondRan)
}
