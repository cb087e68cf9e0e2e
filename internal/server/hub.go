package server

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"coup/internal/engine"
	"coup/internal/engine/abilities"
	"coup/internal/lobby"
	"coup/internal/protocol"

	"github.com/google/uuid"
)

var (
	errGameNotStarted = errors.New("game not started")
	errGameOver       = errors.New("game is over")
	errGameRunning    = errors.New("game still in progress")
	errNotSeated      = errors.New("you are not seated in this game")
)

// Hub manages WebSocket connections and game state for one game room.
// Every engine call happens on the Run goroutine, which serializes the
// commands of a match.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	game       *engine.Game
	names      map[string]string // player id -> engine name
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	stopOnce   sync.Once

	// onIdle runs on the Run goroutine after an empty room has stopped.
	onIdle func(gameID string)
}

func NewHub(gameID string, lob *lobby.Lobby) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		names:      make(map[string]string),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			h.sendStateToClient(client)

		case client := <-h.unregister:
			if h.handleUnregister(client) {
				return
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			return
		}
	}
}

// Stop ends the Run loop.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Register hands a connection to the Run loop. It reports false when the
// room has already closed.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

// handleUnregister forgets a connection. Before the game starts the
// player's seat is released unless another connection still holds it.
// It reports whether the room became idle and was stopped.
func (h *Hub) handleUnregister(client *Client) bool {
	if !h.drop(client) {
		return false
	}
	if h.game == nil && client.PlayerID != "" && !h.connected(client.PlayerID) {
		if _, seated := h.lobby.Player(client.PlayerID); seated {
			h.lobby.Leave(client.PlayerID)
			h.sendLobbyUpdate()
		}
	}
	if !h.idle() {
		return false
	}
	h.Stop()
	log.Printf("room %s: idle, closing", h.gameID)
	if h.onIdle != nil {
		h.onIdle(h.gameID)
	}
	return true
}

// drop removes client and closes its send channel. It reports whether
// the client was registered.
func (h *Hub) drop(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return false
	}
	delete(h.clients, client)
	close(client.send)
	return true
}

func (h *Hub) connected(playerID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.PlayerID == playerID {
			return true
		}
	}
	return false
}

// idle reports whether nobody is connected and nothing is left to resume:
// an empty lobby or a finished match.
func (h *Hub) idle() bool {
	h.mu.Lock()
	n := len(h.clients)
	h.mu.Unlock()
	if n > 0 {
		return false
	}
	if h.game != nil {
		return h.game.Phase() == engine.PhaseGameOver
	}
	return len(h.lobby.GetPlayers()) == 0
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgChooseRole:
		h.handleChooseRole(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgNewGame:
		h.handleNewGame(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, err)
		return
	}
	if join.PlayerID == "" {
		join.PlayerID = uuid.NewString()
	}
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err)
		return
	}
	msg.Client.PlayerID = join.PlayerID
	msg.Client.Type = ClientPlayer
	h.sendLobbyUpdate()
	h.sendStateToClient(msg.Client)
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, err)
		return
	}
	if err := h.lobby.SetReady(msg.Client.PlayerID, ready.Ready); err != nil {
		h.sendError(msg.Client, err)
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleChooseRole(msg IncomingMessage) {
	var choice protocol.ChooseRoleMsg
	if err := msg.Envelope.Decode(&choice); err != nil {
		h.sendError(msg.Client, err)
		return
	}
	var role engine.Role
	if choice.Role != "" {
		r, err := engine.ParseRole(choice.Role)
		if err != nil {
			h.sendError(msg.Client, err)
			return
		}
		role = r
	}
	if err := h.lobby.ChooseRole(msg.Client.PlayerID, role); err != nil {
		h.sendError(msg.Client, err)
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err)
		return
	}

	game := engine.NewGame(abilities.NewRegistry())
	names := make(map[string]string)
	for _, lp := range h.lobby.GetPlayers() {
		if _, err := game.Join(lp.Name, lp.Role); err != nil {
			log.Printf("room %s: seating %s: %v", h.gameID, lp.Name, err)
			h.lobby.Reset()
			h.sendError(msg.Client, err)
			return
		}
		names[lp.ID] = lp.Name
	}
	h.game = game
	h.names = names
	log.Printf("room %s: game started with %d players", h.gameID, len(names))

	h.sendLobbyUpdate()
	h.broadcastState()
}

func (h *Hub) handleNewGame(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, errGameNotStarted)
		return
	}
	if h.game.Phase() != engine.PhaseGameOver {
		h.sendError(msg.Client, errGameRunning)
		return
	}
	if err := h.lobby.Reset(); err != nil {
		h.sendError(msg.Client, err)
		return
	}
	h.game = nil
	h.names = make(map[string]string)
	h.sendLobbyUpdate()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, errGameNotStarted)
		return
	}
	if h.game.Phase() == engine.PhaseGameOver {
		h.sendError(msg.Client, errGameOver)
		return
	}
	name, ok := h.names[msg.Client.PlayerID]
	if !ok {
		h.sendError(msg.Client, errNotSeated)
		return
	}

	action, err := h.parseAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, err)
		return
	}

	events, err := h.game.Apply(name, action)
	if err != nil {
		h.sendError(msg.Client, err)
		return
	}

	h.broadcastEvents(events)
	h.broadcastState()
}

func (h *Hub) parseAction(env protocol.Envelope) (engine.Action, error) {
	var payload protocol.ActionMsg
	if err := env.Decode(&payload); err != nil {
		return engine.Action{}, err
	}
	return engine.Action{Type: engine.ActionType(env.Type), Target: payload.Target}, nil
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgEvent, ev))
		if ev.Type == engine.EventGameOver {
			log.Printf("room %s: %s wins in round %d", h.gameID, ev.Player, h.game.Round())
			h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, protocol.GameOverMsg{
				Winner: ev.Player,
				Round:  h.game.Round(),
			}))
		}
	}
}

func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.SendEnvelope(h.stateFor(client))
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.game == nil {
		return
	}
	h.sendTo(client, h.stateFor(client))
}

// stateFor returns the public table for spectators and unseated
// connections, and the personal view for seated players.
func (h *Hub) stateFor(client *Client) protocol.Envelope {
	name, seated := h.names[client.PlayerID]
	if client.Type == ClientSpectator || !seated {
		return protocol.MustEnvelope(protocol.MsgGameState, h.game.PublicView())
	}
	return protocol.MustEnvelope(protocol.MsgPlayerState, h.game.ViewFor(name))
}

// sendTo delivers env to one client. Replies to a client that has
// disconnected are dropped.
func (h *Hub) sendTo(client *Client, env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	client.SendEnvelope(env)
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready, RoleChosen: p.Chose}
	}
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:          h.gameID,
		Players:         lps,
		Started:         h.lobby.IsStarted(),
		AllowRoleChoice: h.lobby.AllowRoleChoice,
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("client %s buffer full", client.PlayerID)
		}
	}
}

func (h *Hub) sendError(client *Client, err error) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{
		Code:    string(engine.CodeOf(err)),
		Message: err.Error(),
	})
	h.sendTo(client, env)
}
