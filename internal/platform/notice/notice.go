// Package notice carries short user facing messages (toasts, snackbars and
// ongoing notifications) to whatever surface is showing them
package notice

import (
	"sync"
	"time"

	"mvpauth/internal/platform/logger"
)

// Duration is how long a notice stays visible
type Duration string

const (
	// Short is a brief confirmation
	Short Duration = "short"
	// Long is a notice the user should have time to read
	Long Duration = "long"
	// Ongoing stays until replaced under the same key
	Ongoing Duration = "ongoing"
)

// Notice is one message posted to the user
type Notice struct {
	Key      string    `json:"key,omitempty"`
	Text     string    `json:"text"`
	Duration Duration  `json:"duration"`
	At       time.Time `json:"at"`
}

// Sink accepts notices
type Sink interface {
	Post(n Notice)
}

// SinkFunc adapts a func to Sink
type SinkFunc func(Notice)

// Post implements Sink
func (f SinkFunc) Post(n Notice) { f(n) }

// Discard drops every notice
var Discard Sink = SinkFunc(func(Notice) {})

// DefaultCapacity is the number of notices a Board keeps
const DefaultCapacity = 32

// Board keeps the most recent notices in memory
// ongoing notices with a key replace the previous one with that key
type Board struct {
	mu    sync.Mutex
	cap   int
	items []Notice
	now   func() time.Time
}

// NewBoard builds a Board keeping up to capacity notices
func NewBoard(capacity int) *Board {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Board{cap: capacity, now: time.Now}
}

// Post implements Sink
func (b *Board) Post(n Notice) {
	if n.Duration == "" {
		n.Duration = Short
	}
	if n.At.IsZero() {
		n.At = b.now().UTC()
	}

	b.mu.Lock()
	replaced := false
	if n.Key != "" {
		for i := range b.items {
			if b.items[i].Key == n.Key {
				b.items[i] = n
				replaced = true
				break
			}
		}
	}
	if !replaced {
		b.items = append(b.items, n)
		if over := len(b.items) - b.cap; over > 0 {
			b.items = append(b.items[:0:0], b.items[over:]...)
		}
	}
	b.mu.Unlock()

	logger.Named("notice").Debug().Str("key", n.Key).Str("duration", string(n.Duration)).Str("text", n.Text).Msg("notice posted")
}

// Recent returns a copy of the kept notices, oldest first
func (b *Board) Recent() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notice(nil), b.items...)
}

// Last returns the newest notice
func (b *Board) Last() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return Notice{}, false
	}
	return b.items[len(b.items)-1], true
}

// Clear drops every kept notice
func (b *Board) Clear() {
	b.mu.Lock()
	b.items = nil
	b.mu.Unlock()
}

// Helpers for the common shapes

// ShortText posts a short notice
func ShortText(s Sink, text string) { s.Post(Notice{Text: text, Duration: Short}) }

// LongText posts a long notice
func LongText(s Sink, text string) { s.Post(Notice{Text: text, Duration: Long}) }

// Progress posts or replaces the ongoing notice under key
func Progress(s Sink, key, text string) { s.Post(Notice{Key: key, Text: text, Duration: Ongoing}) }
