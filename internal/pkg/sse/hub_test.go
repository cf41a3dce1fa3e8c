package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyTarget(t *testing.T) {
	hub := NewHub()
	a, cleanupA := hub.Subscribe("a")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("b")
	defer cleanupB()

	hub.Publish("a", Event{Event: "ping", Data: 1})

	require.Len(t, a, 1)
	got := <-a
	assert.Equal(t, "a", got.WorkerID)
	assert.Equal(t, "ping", got.Event)
	assert.Len(t, b, 0)
}

func TestHub_PublishToManyDeduplicates(t *testing.T) {
	hub := NewHub()
	a, cleanup := hub.Subscribe("a")
	defer cleanup()

	hub.PublishToMany([]string{"a", "b", "a"}, Event{Event: "attendance.saved"})

	assert.Len(t, a, 1)
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("a")
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish("a", Event{Event: "e"})
	}
	assert.Len(t, ch, 10)
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()
	_, c1 := hub.Subscribe("a")
	_, c2 := hub.Subscribe("a")
	assert.Equal(t, 2, hub.SubscriberCount("a"))
	assert.Equal(t, 2, hub.TotalSubscribers())

	c1()
	c1()
	assert.Equal(t, 1, hub.SubscriberCount("a"))

	c2()
	assert.Equal(t, 0, hub.TotalSubscribers())

	// publishing after everyone left is a no-op
	hub.Publish("a", Event{Event: "e"})
}
