// Package relay is the in-process broadcast channel that moves results from the
// intake endpoint to whichever session is listening
//
// Delivery is fire and forget: an event published while nobody is subscribed
// is dropped, there is no queue and no replay
package relay

import (
	"sync"
	"sync/atomic"

	"mvpauth/internal/core/addressing"
	"mvpauth/internal/platform/logger"
)

// ResultChannel is the default channel results are published on
const ResultChannel = addressing.DefaultRelayChannel

// PayloadKey is the field the result text travels under
const PayloadKey = "result"

// Event is one relayed message
type Event struct {
	Channel    string `json:"channel"`
	ResultText string `json:"result"`
}

// Handler receives events for one subscription
// handlers run on the publisher's goroutine and must not block
type Handler func(Event)

// Subscription identifies one registration
type Subscription struct {
	channel string
	id      uint64
	bus     *Bus
}

// Active reports whether the handle refers to a real registration attempt
func (s Subscription) Active() bool { return s.bus != nil && s.id != 0 }

// Bus is a channel keyed broadcast primitive with no cardinality limit
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]Handler
	nextID uint64
	closed bool
}

// NewBus returns an empty bus
func NewBus() *Bus {
	return &Bus{subs: map[string]map[uint64]Handler{}}
}

// Subscribe registers h for channel
// a closed bus returns an inert handle
func (b *Bus) Subscribe(channel string, h Handler) Subscription {
	if b == nil || h == nil {
		return Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return Subscription{}
	}
	b.nextID++
	id := b.nextID
	if b.subs[channel] == nil {
		b.subs[channel] = map[uint64]Handler{}
	}
	b.subs[channel][id] = h
	return Subscription{channel: channel, id: id, bus: b}
}

// Unsubscribe removes a registration and reports whether it was present
func (b *Bus) Unsubscribe(s Subscription) bool {
	if b == nil || s.bus != b || s.id == 0 {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	hs, ok := b.subs[s.channel]
	if !ok {
		return false
	}
	if _, ok := hs[s.id]; !ok {
		return false
	}
	delete(hs, s.id)
	if len(hs) == 0 {
		delete(b.subs, s.channel)
	}
	return true
}

// Publish delivers ev to every current subscriber of ev.Channel and returns
// how many received it
func (b *Bus) Publish(ev Event) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return 0
	}
	hs := make([]Handler, 0, len(b.subs[ev.Channel]))
	for _, h := range b.subs[ev.Channel] {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	if len(hs) == 0 {
		logger.Named("relay").Debug().Str("channel", ev.Channel).Msg("no subscribers, event dropped")
		return 0
	}
	for _, h := range hs {
		h(ev)
	}
	return len(hs)
}

// Subscribers counts registrations on channel
func (b *Bus) Subscribers(channel string) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}

// Close drops every registration, later publishes are dropped
func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.closed = true
	b.subs = map[string]map[uint64]Handler{}
	b.mu.Unlock()
}

// Process wide instance

var current atomic.Pointer[Bus]

// closedBus answers Default before Init and after Shutdown
var closedBus = func() *Bus {
	b := NewBus()
	b.closed = true
	return b
}()

// Init installs the process wide bus, safe to call more than once
func Init() *Bus {
	b := NewBus()
	if current.CompareAndSwap(nil, b) {
		logger.Named("relay").Debug().Msg("relay initialised")
		return b
	}
	return current.Load()
}

// Default returns the process wide bus, a closed bus when not initialised
func Default() *Bus {
	if b := current.Load(); b != nil {
		return b
	}
	return closedBus
}

// Shutdown closes and removes the process wide bus
func Shutdown() {
	if b := current.Swap(nil); b != nil {
		b.Close()
		logger.Named("relay").Debug().Msg("relay shut down")
	}
}
