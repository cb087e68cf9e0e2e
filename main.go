package main

import (
	"flag"
	"log"

	"coup/internal/config"
	"coup/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	port := flag.Int("port", cfg.Port, "server port (overrides COUP_PORT)")
	flag.Parse()
	cfg.Port = *port

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
