// Package notify implements the transient notification queue backing the
// toast overlay. The center holds page-lifetime state only: messages
// auto-expire after a TTL and the number of simultaneously visible
// messages is capped, dropping the oldest first.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level tags a notification for styling.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultTTL is how long a notification stays visible unless dismissed.
const DefaultTTL = 5 * time.Second

// DefaultMaxVisible caps the number of simultaneously visible messages.
const DefaultMaxVisible = 5

// Notification is a single dismissible toast message.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	expiresAt time.Time
}

// Center is a concurrency-safe notification queue.
type Center struct {
	mu         sync.Mutex
	queue      []Notification
	maxVisible int
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Center.
type Option func(*Center)

// WithTTL overrides the auto-dismiss duration.
func WithTTL(d time.Duration) Option {
	return func(c *Center) { c.ttl = d }
}

// WithMaxVisible overrides the visible-message cap.
func WithMaxVisible(n int) Option {
	return func(c *Center) { c.maxVisible = n }
}

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// NewCenter creates a notification center with the default TTL and cap.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		maxVisible: DefaultMaxVisible,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push enqueues a message and returns it. When the queue is full the
// oldest visible message is dropped.
func (c *Center) Push(level Level, message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		expiresAt: now.Add(c.ttl),
	}

	c.sweepLocked(now)
	c.queue = append(c.queue, n)
	if overflow := len(c.queue) - c.maxVisible; overflow > 0 {
		c.queue = c.queue[overflow:]
	}
	return n
}

// Visible returns the currently visible notifications, oldest first.
// Expired messages are swept before the snapshot is taken.
func (c *Center) Visible() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked(c.now())
	out := make([]Notification, len(c.queue))
	copy(out, c.queue)
	return out
}

// Dismiss removes a notification by ID. Dismissing an unknown ID is a
// no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.queue {
		if n.ID == id {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return
		}
	}
}

// sweepLocked drops expired notifications. Callers must hold mu.
func (c *Center) sweepLocked(now time.Time) {
	kept := c.queue[:0]
	for _, n := range c.queue {
		if n.expiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	c.queue = kept
}
