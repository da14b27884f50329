package main

import (
	"os"

	"github.com/remitflow/remitflow/internal/server"
)

func main() {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	s := server.New()
	s.RegisterRoutes()
	s.Start(addr)
}
