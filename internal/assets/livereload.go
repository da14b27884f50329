package assets

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Livereload pushes a reload command to connected browsers whenever the
// watcher finishes a rebuild. It runs only in the watch command, never in
// the production server.
type Livereload struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewLivereload creates the livereload endpoint.
func NewLivereload() *Livereload {
	return &Livereload{
		upgrader: websocket.Upgrader{
			// Local development tool; any origin may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the connection and parks it until reload or
// disconnect.
func (l *Livereload) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Livereload upgrade failed", "error", err)
		return
	}

	l.mu.Lock()
	l.clients[conn] = struct{}{}
	l.mu.Unlock()

	slog.Debug("Livereload client connected")

	// Drain reads so close frames are processed; browsers never send data.
	go func() {
		defer l.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast tells every connected browser to reload.
func (l *Livereload) Broadcast(stage string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for conn := range l.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload:"+stage)); err != nil {
			conn.Close()
			delete(l.clients, conn)
		}
	}
}

func (l *Livereload) drop(conn *websocket.Conn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	conn.Close()
	delete(l.clients, conn)
}
