package hub

import "log/slog"

// Subscriber represents a single connected browser that receives rendered
// HTML fragments (toasts, refreshed lists, reload commands) from the Hub.
type Subscriber struct {
	// Send is a buffered channel of outbound messages. The Hub sends
	// messages to this channel, and the connection's write loop drains it.
	Send chan []byte

	// UserID scopes targeted broadcasts. Empty means the subscriber
	// receives only global broadcasts (e.g. livereload).
	UserID string
}

// Hub is a concurrent fan-out bus for push messages. It maintains the set
// of active subscribers and broadcasts payloads to them.
type Hub struct {
	subscribers map[*Subscriber]bool

	// Broadcast delivers a message to every subscriber.
	Broadcast chan []byte

	// Direct delivers a message to the subscribers of a single user.
	Direct chan DirectMessage

	// Register and Unregister manage subscriber membership.
	Register   chan *Subscriber
	Unregister chan *Subscriber
}

// DirectMessage targets all connections belonging to one user.
type DirectMessage struct {
	UserID  string
	Payload []byte
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Broadcast:   make(chan []byte),
		Direct:      make(chan DirectMessage),
		Register:    make(chan *Subscriber),
		Unregister:  make(chan *Subscriber),
		subscribers: make(map[*Subscriber]bool),
	}
}

// Run starts the Hub's message processing loop. It must be run in a
// separate goroutine.
func (h *Hub) Run() {
	for {
		select {
		case subscriber := <-h.Register:
			h.subscribers[subscriber] = true
			slog.Debug("New subscriber registered", "total_subscribers", len(h.subscribers))

		case subscriber := <-h.Unregister:
			if _, ok := h.subscribers[subscriber]; ok {
				delete(h.subscribers, subscriber)
				close(subscriber.Send)
				slog.Debug("Subscriber unregistered", "total_subscribers", len(h.subscribers))
			}

		case message := <-h.Broadcast:
			for subscriber := range h.subscribers {
				h.deliver(subscriber, message)
			}

		case dm := <-h.Direct:
			for subscriber := range h.subscribers {
				if subscriber.UserID == dm.UserID {
					h.deliver(subscriber, dm.Payload)
				}
			}
		}
	}
}

// deliver performs a non-blocking send. A full buffer means the client is
// lagging or gone, so the subscriber is dropped.
func (h *Hub) deliver(subscriber *Subscriber, message []byte) {
	select {
	case subscriber.Send <- message:
	default:
		close(subscriber.Send)
		delete(h.subscribers, subscriber)
		slog.Warn("Unregistering slow subscriber", "total_subscribers", len(h.subscribers))
	}
}
