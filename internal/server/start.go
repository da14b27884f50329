package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Start runs the HTTP server and the realtime bridge until an interrupt
// or terminate signal arrives, then shuts both down.
func (s *Server) Start(addr string) {
	bridgeCtx, stopBridge := context.WithCancel(context.Background())
	defer stopBridge()

	if err := s.bridge.Start(bridgeCtx); err != nil {
		// The app still works without live updates; pages re-fetch on
		// every load. Log and continue.
		slog.Error("Realtime bridge failed to start", "error", err)
	}

	go func() {
		if err := s.E.Start(addr); err != nil && err != http.ErrServerClosed {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	stopBridge()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.bus.Close(); err != nil {
		slog.Warn("Failed to close message bus", "error", err)
	}
	s.DB.Close(ctx)
	if err := s.E.Shutdown(ctx); err != nil {
		s.E.Logger.Fatal(err)
	}
}
