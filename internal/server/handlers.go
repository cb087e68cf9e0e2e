package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"coup/internal/config"
	"coup/internal/lobby"
	qr "coup/internal/qrcode"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager
	Config   config.Config

	mu   sync.RWMutex
	hubs map[string]*Hub
}

func NewHandlers(cfg config.Config) *Handlers {
	return &Handlers{
		LobbyMgr: lobby.NewManager(cfg.AllowRoleChoice),
		Config:   cfg,
		hubs:     make(map[string]*Hub),
	}
}

// CreateResponse is returned by the create endpoint.
type CreateResponse struct {
	GameID  string `json:"game_id"`
	JoinURL string `json:"join_url"`
	QRURL   string `json:"qr_url"`
	WSURL   string `json:"ws_url"`
}

// JoinInfo tells a scanning device how to connect to a room.
type JoinInfo struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	WSURL    string `json:"ws_url"`
}

// Hub returns the hub of a room.
func (h *Handlers) Hub(gameID string) (*Hub, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	hub, ok := h.hubs[gameID]
	return hub, ok
}

// HandleCreateGame creates a new game lobby and starts its hub.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	lob := h.LobbyMgr.Get(gameID)
	hub := NewHub(gameID, lob)
	hub.onIdle = h.removeRoom
	h.mu.Lock()
	h.hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()
	log.Printf("room %s created", gameID)

	host := h.host(r)
	writeJSON(w, http.StatusCreated, CreateResponse{
		GameID:  gameID,
		JoinURL: joinURL(host, gameID),
		QRURL:   fmt.Sprintf("http://%s/api/qr?game=%s", host, gameID),
		WSURL:   fmt.Sprintf("ws://%s/ws?game=%s&type=spectator", host, gameID),
	})
}

// HandleRooms lists every room.
func (h *Handlers) HandleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.LobbyMgr.List())
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	if _, ok := h.Hub(gameID); !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	png, err := qr.Generate(joinURL(h.host(r), gameID), h.Config.QRSize)
	if err != nil {
		log.Printf("qr error: %v", err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleJoin is the target of the join link: it hands out a player ID and
// the WebSocket address for the room.
func (h *Handlers) HandleJoin(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if _, ok := h.Hub(gameID); !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	playerID := uuid.NewString()
	writeJSON(w, http.StatusOK, JoinInfo{
		GameID:   gameID,
		PlayerID: playerID,
		WSURL:    fmt.Sprintf("ws://%s/ws?game=%s&player=%s", h.host(r), gameID, playerID),
	})
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "spectator" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, ok := h.Hub(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	ct := ClientPlayer
	if clientType == "spectator" {
		ct = ClientSpectator
	}

	client := NewClient(hub, conn, playerID, ct, h.Config.SendBuffer)
	if !hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(uuid.NewString()))
}

// removeRoom forgets a room whose hub has stopped.
func (h *Handlers) removeRoom(gameID string) {
	h.mu.Lock()
	delete(h.hubs, gameID)
	h.mu.Unlock()
	h.LobbyMgr.Remove(gameID)
	log.Printf("room %s removed", gameID)
}

func (h *Handlers) host(r *http.Request) string {
	if h.Config.PublicHost != "" {
		return h.Config.PublicHost
	}
	return r.Host
}

func joinURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/join?game=%s", host, gameID)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}
