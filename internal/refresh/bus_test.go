package refresh

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) (Event, bool) {
	t.Helper()
	select {
	case e, ok := <-sub.C():
		return e, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}, false
	}
}

func assertNoEvent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case e := <-sub.C():
		t.Fatalf("unexpected event %+v", e)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBus_DeliversMatchingEvents(t *testing.T) {
	bus := NewBus(4, zerolog.Nop())
	defer bus.Close()

	leaves := bus.Subscribe(Filter{Topics: []Topic{TopicLeaves}, BranchID: 1})
	all := bus.Subscribe(Filter{})

	bus.Publish(Changed(TopicLeaves, ActionCreated, 1, 42))
	bus.Publish(Changed(TopicStudents, ActionUpdated, 1, 7))
	bus.Publish(Changed(TopicLeaves, ActionUpdated, 2, 9))

	e, ok := receive(t, leaves)
	require.True(t, ok)
	assert.Equal(t, TopicLeaves, e.Topic)
	assert.Equal(t, "42", e.EntityID)
	assert.False(t, e.OccurredAt.IsZero())
	assertNoEvent(t, leaves)

	for _, want := range []Topic{TopicLeaves, TopicStudents, TopicLeaves} {
		e, _ := receive(t, all)
		assert.Equal(t, want, e.Topic)
	}
}

func TestBus_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus(1, zerolog.Nop())
	defer bus.Close()
	sub := bus.Subscribe(Filter{})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(Changed(TopicFees, ActionCreated, 1, i+1))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	e, _ := receive(t, sub)
	assert.Equal(t, "1", e.EntityID)
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(4, zerolog.Nop())
	sub := bus.Subscribe(Filter{})
	require.Equal(t, 1, bus.Len())

	sub.Unsubscribe()
	sub.Unsubscribe()

	_, ok := <-sub.C()
	assert.False(t, ok)
	assert.Equal(t, 0, bus.Len())

	bus.Close()
	bus.Close()
	_, ok = <-bus.Subscribe(Filter{}).C()
	assert.False(t, ok)
}

func TestFilter_Match(t *testing.T) {
	e := Event{Topic: TopicHostel, BranchID: 3}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty matches all", Filter{}, true},
		{"topic match", Filter{Topics: []Topic{TopicTransport, TopicHostel}}, true},
		{"topic mismatch", Filter{Topics: []Topic{TopicTransport}}, false},
		{"branch mismatch", Filter{BranchID: 4}, false},
		{"branch match", Filter{BranchID: 3, Topics: []Topic{TopicHostel}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(e))
		})
	}
}

func TestTopic_IsValid(t *testing.T) {
	assert.True(t, TopicLibrary.IsValid())
	assert.False(t, Topic("gossip").IsValid())
}
