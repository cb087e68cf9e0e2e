package server

import (
	"fmt"
	"log"
	"net/http"

	"coup/internal/config"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
}

func New(cfg config.Config) *Server {
	return &Server{
		handlers: NewHandlers(cfg),
		port:     cfg.Port,
	}
}

// Routes returns the HTTP routes of the server.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/rooms", s.handlers.HandleRooms)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/join", s.handlers.HandleJoin)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Coup server starting on http://localhost%s", addr)
	log.Printf("Open http://localhost%s/api/create to create a new game", addr)
	return http.ListenAndServe(addr, s.Routes())
}
