package refresh

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBridge shares events between server replicas: Publish goes to a
// Redis channel, and Run feeds that channel back into the local Bus.
type RedisBridge struct {
	rdb     *redis.Client
	bus     *Bus
	channel string
	log     zerolog.Logger
}

// NewRedisBridge creates a bridge over config.Channel.RefreshEvents.
func NewRedisBridge(rdb *redis.Client, bus *Bus, log zerolog.Logger) *RedisBridge {
	return &RedisBridge{
		rdb:     rdb,
		bus:     bus,
		channel: config.Channel.RefreshEvents,
		log:     log.With().Str("component", "refresh_bridge").Logger(),
	}
}

// Publish sends e to Redis. On failure the event is delivered locally only.
func (r *RedisBridge) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(e)
	if err != nil {
		r.log.Error().Err(err).Msg("Marshal refresh event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.log.Warn().Err(err).Str("topic", string(e.Topic)).Msg("Redis publish failed, delivering locally")
		r.bus.Publish(e)
	}
}

// Run relays Redis messages into the local Bus until ctx is cancelled.
// The returned channel is closed once the subscription is live.
func (r *RedisBridge) Run(ctx context.Context) <-chan struct{} {
	ready := make(chan struct{})
	pubsub := r.rdb.Subscribe(ctx, r.channel)

	go func() {
		defer pubsub.Close()

		if _, err := pubsub.Receive(ctx); err != nil {
			r.log.Error().Err(err).Msg("Subscribe refresh channel")
			close(ready)
			return
		}
		close(ready)
		r.log.Info().Str("channel", r.channel).Msg("Refresh bridge started")

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				r.log.Info().Msg("Refresh bridge stopped")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					r.log.Warn().Err(err).Msg("Malformed refresh event")
					continue
				}
				r.bus.Publish(e)
			}
		}
	}()

	return ready
}
