package realtime

import (
	"sync"

	"github.com/remitflow/remitflow/internal/notify"
)

// ToastLog remembers recently pushed toasts per user so a reconnecting
// stream can replay what the browser missed. Entries expire on the
// notification center's TTL, so only still-relevant messages replay.
type ToastLog struct {
	mu     sync.Mutex
	byUser map[string]*notify.Center
	opts   []notify.Option
}

// NewToastLog creates an empty log. Options apply to every user's queue.
func NewToastLog(opts ...notify.Option) *ToastLog {
	return &ToastLog{
		byUser: make(map[string]*notify.Center),
		opts:   opts,
	}
}

// Record remembers a toast pushed to the given user.
func (l *ToastLog) Record(userID string, level notify.Level, message string) {
	l.center(userID).Push(level, message)
}

// Visible returns the user's still-visible toasts, oldest first.
func (l *ToastLog) Visible(userID string) []notify.Notification {
	return l.center(userID).Visible()
}

func (l *ToastLog) center(userID string) *notify.Center {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.byUser[userID]
	if !ok {
		c = notify.NewCenter(l.opts...)
		l.byUser[userID] = c
	}
	return c
}
