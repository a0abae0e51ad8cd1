package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBridge_RelaysIntoBus(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	bus := NewBus(8, zerolog.Nop())
	defer bus.Close()
	sub := bus.Subscribe(Filter{Topics: []Topic{TopicAnnouncements}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewRedisBridge(rdb, bus, zerolog.Nop())
	select {
	case <-bridge.Run(ctx):
	case <-time.After(time.Second):
		t.Fatal("bridge did not become ready")
	}

	bridge.Publish(Changed(TopicAnnouncements, ActionCreated, 2, 11))

	e, ok := receive(t, sub)
	require.True(t, ok)
	assert.Equal(t, TopicAnnouncements, e.Topic)
	assert.Equal(t, 2, e.BranchID)
	assert.Equal(t, "11", e.EntityID)
}

func TestRedisBridge_FallsBackToLocalDelivery(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	bus := NewBus(8, zerolog.Nop())
	defer bus.Close()
	sub := bus.Subscribe(Filter{})

	NewRedisBridge(rdb, bus, zerolog.Nop()).Publish(Changed(TopicFees, ActionUpdated, 1, 5))

	e, ok := receive(t, sub)
	require.True(t, ok)
	assert.Equal(t, TopicFees, e.Topic)
}
