package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	t.Run("stamps events", func(t *testing.T) {
		ch := NewChannel()
		Emit(ch, Event{Type: RunStart})
		ev := <-ch
		assert.Equal(t, RunStart, ev.Type)
		assert.False(t, ev.Timestamp.IsZero())
	})

	t.Run("keeps an existing timestamp", func(t *testing.T) {
		ch := NewChannel()
		ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		Emit(ch, Event{Type: RunEnd, Timestamp: ts})
		assert.Equal(t, ts, (<-ch).Timestamp)
	})

	t.Run("drops when full", func(t *testing.T) {
		ch := make(chan Event, 1)
		Emit(ch, Event{Type: StageStart})
		Emit(ch, Event{Type: StageEnd})
		require.Len(t, ch, 1)
		assert.Equal(t, StageStart, (<-ch).Type)
	})

	t.Run("nil channel is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { Emit(nil, Event{Type: RunStart}) })
	})
}

func TestObservers(t *testing.T) {
	t.Run("Multi fans out in order and skips nil", func(t *testing.T) {
		var order []string
		a := ObserverFunc(func(Event) { order = append(order, "a") })
		b := ObserverFunc(func(Event) { order = append(order, "b") })
		Multi(a, nil, b).OnEvent(Event{Type: RunStart})
		assert.Equal(t, []string{"a", "b"}, order)
	})

	t.Run("Channel forwards", func(t *testing.T) {
		ch := NewChannel()
		Channel(ch).OnEvent(Event{Type: StageDegraded, Stage: "seo"})
		assert.Equal(t, "seo", (<-ch).Stage)
	})

	t.Run("Recorder filters by type", func(t *testing.T) {
		r := &Recorder{}
		r.OnEvent(Event{Type: StageStart, Stage: "research"})
		r.OnEvent(Event{Type: StageEnd, Stage: "research"})
		r.OnEvent(Event{Type: StageStart, Stage: "seo"})
		starts := r.OfType(StageStart)
		require.Len(t, starts, 2)
		assert.Equal(t, "seo", starts[1].Stage)
	})

	t.Run("Discard accepts anything", func(t *testing.T) {
		assert.NotPanics(t, func() { Discard.OnEvent(Event{}) })
	})
}
