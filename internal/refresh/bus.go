package refresh

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Publisher is what services depend on to announce changes.
type Publisher interface {
	Publish(e Event)
}

const defaultBuffer = 32

// Bus fans events out to in-process subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
	buffer int
	log    zerolog.Logger
}

// NewBus creates a Bus whose subscribers buffer up to buffer events.
func NewBus(buffer int, log zerolog.Logger) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
		log:    log.With().Str("component", "refresh_bus").Logger(),
	}
}

// Subscription receives events matching its filter until Unsubscribe.
type Subscription struct {
	bus    *Bus
	filter Filter
	ch     chan Event
	once   sync.Once
}

// C returns the event channel. It is closed on Unsubscribe or Bus.Close.
func (s *Subscription) C() <-chan Event { return s.ch }

// Unsubscribe detaches the subscription and closes its channel.
func (s *Subscription) Unsubscribe() {
	s.bus.remove(s)
}

// Subscribe registers a new subscriber. Subscribing to a closed bus returns
// a subscription whose channel is already closed.
func (b *Bus) Subscribe(f Filter) *Subscription {
	sub := &Subscription{bus: b, filter: f, ch: make(chan Event, b.buffer)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.ch)
		sub.once.Do(func() {})
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Publish delivers e to all matching subscribers.
func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for sub := range b.subs {
		if !sub.filter.Match(e) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.log.Warn().
				Str("topic", string(e.Topic)).
				Msg("Subscriber buffer full, event dropped")
		}
	}
}

// Len returns the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close detaches and closes every subscription.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.once.Do(func() { close(sub.ch) })
		delete(b.subs, sub)
	}
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, s)
	s.once.Do(func() { close(s.ch) })
}

// Changed is a convenience constructor for services.
func Changed(topic Topic, action Action, branchID int, entityID int) Event {
	id := ""
	if entityID != 0 {
		id = strconv.Itoa(entityID)
	}
	return Event{Topic: topic, Action: action, BranchID: branchID, EntityID: id}
}
