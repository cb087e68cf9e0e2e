package server

import (
	"encoding/json"
	"testing"

	"coup/internal/engine"
	"coup/internal/lobby"
	"coup/internal/protocol"
)

func newTestHub() *Hub {
	return NewHub("room", lobby.NewLobby("room"))
}

func attach(h *Hub, id string, typ ClientType) *Client {
	c := &Client{hub: h, send: make(chan []byte, 64), PlayerID: id, Type: typ}
	h.clients[c] = true
	return c
}

func send(h *Hub, c *Client, typ string, payload interface{}) {
	h.handleMessage(IncomingMessage{Client: c, Envelope: protocol.MustEnvelope(typ, payload)})
}

func drain(t *testing.T, c *Client) []protocol.Envelope {
	t.Helper()
	var out []protocol.Envelope
	for {
		select {
		case data := <-c.send:
			var env protocol.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			out = append(out, env)
		default:
			return out
		}
	}
}

func last(envs []protocol.Envelope, typ string) (protocol.Envelope, bool) {
	for i := len(envs) - 1; i >= 0; i-- {
		if envs[i].Type == typ {
			return envs[i], true
		}
	}
	return protocol.Envelope{}, false
}

func lastError(t *testing.T, c *Client) protocol.ErrorMsg {
	t.Helper()
	env, ok := last(drain(t, c), protocol.MsgError)
	if !ok {
		t.Fatal("expected an error message")
	}
	var msg protocol.ErrorMsg
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return msg
}

func playerState(t *testing.T, c *Client) engine.PlayerViewData {
	t.Helper()
	env, ok := last(drain(t, c), protocol.MsgPlayerState)
	if !ok {
		t.Fatal("expected a player_state message")
	}
	var view engine.PlayerViewData
	if err := json.Unmarshal(env.Payload, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	return view
}

// startTwoPlayerGame seats Alice as Governor and Bob as Spy.
func startTwoPlayerGame(t *testing.T) (*Hub, *Client, *Client) {
	t.Helper()
	h := newTestHub()
	alice := attach(h, "", ClientPlayer)
	bob := attach(h, "", ClientPlayer)

	send(h, alice, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Alice"})
	send(h, bob, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "b", Name: "Bob"})
	send(h, alice, protocol.MsgChooseRole, protocol.ChooseRoleMsg{Role: "governor"})
	send(h, bob, protocol.MsgChooseRole, protocol.ChooseRoleMsg{Role: "Spy"})
	send(h, alice, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	send(h, bob, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	send(h, alice, protocol.MsgStartGame, nil)

	if h.game == nil {
		t.Fatalf("game did not start: %+v", drain(t, alice))
	}
	return h, alice, bob
}

func TestHubLobbyFlow(t *testing.T) {
	h := newTestHub()
	alice := attach(h, "", ClientPlayer)
	send(h, alice, protocol.MsgJoin, protocol.JoinMsg{Name: "Alice"})

	if alice.PlayerID == "" {
		t.Fatal("join without id should assign one")
	}
	env, ok := last(drain(t, alice), protocol.MsgLobbyUpdate)
	if !ok {
		t.Fatal("expected lobby update")
	}
	var update protocol.LobbyUpdate
	json.Unmarshal(env.Payload, &update)
	if len(update.Players) != 1 || update.Players[0].Name != "Alice" {
		t.Fatalf("lobby update: %+v", update)
	}

	send(h, alice, protocol.MsgStartGame, nil)
	if msg := lastError(t, alice); msg.Message != lobby.ErrTooFewPlayers.Error() {
		t.Errorf("start error: %+v", msg)
	}

	send(h, alice, protocol.MsgChooseRole, protocol.ChooseRoleMsg{Role: "Duke"})
	lastError(t, alice)
}

func TestHubStartSendsPrivateViews(t *testing.T) {
	h, alice, bob := startTwoPlayerGame(t)
	spectator := attach(h, "", ClientSpectator)
	h.broadcastState()

	av := playerState(t, alice)
	if av.Role != "Governor" || !av.IsMyTurn {
		t.Errorf("alice view: role=%s myTurn=%v", av.Role, av.IsMyTurn)
	}
	bv := playerState(t, bob)
	if bv.Role != "Spy" || bv.IsMyTurn {
		t.Errorf("bob view: role=%s myTurn=%v", bv.Role, bv.IsMyTurn)
	}

	envs := drain(t, spectator)
	if _, ok := last(envs, protocol.MsgPlayerState); ok {
		t.Error("spectator must not receive a player view")
	}
	if _, ok := last(envs, protocol.MsgGameState); !ok {
		t.Error("spectator should receive the public view")
	}
}

func TestHubRejectsOutOfTurnAction(t *testing.T) {
	h, alice, bob := startTwoPlayerGame(t)
	drain(t, alice)

	send(h, bob, protocol.MsgGather, nil)
	msg := lastError(t, bob)
	if msg.Code != string(engine.CodeNotYourTurn) {
		t.Errorf("error: %+v", msg)
	}

	send(h, alice, protocol.MsgGather, nil)
	envs := drain(t, alice)
	if _, ok := last(envs, protocol.MsgEvent); !ok {
		t.Fatal("expected broadcast events")
	}
	if playerStateFrom(t, envs).IsMyTurn {
		t.Error("alice should no longer have the turn")
	}
}

func playerStateFrom(t *testing.T, envs []protocol.Envelope) engine.PlayerViewData {
	t.Helper()
	env, ok := last(envs, protocol.MsgPlayerState)
	if !ok {
		t.Fatal("expected a player_state message")
	}
	var view engine.PlayerViewData
	if err := json.Unmarshal(env.Payload, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	return view
}

func TestHubUnseatedClientCannotAct(t *testing.T) {
	h, _, _ := startTwoPlayerGame(t)
	spectator := attach(h, "", ClientSpectator)
	send(h, spectator, protocol.MsgGather, nil)
	if msg := lastError(t, spectator); msg.Message != errNotSeated.Error() {
		t.Errorf("error: %+v", msg)
	}
}

func TestHubGameOverAndNewGame(t *testing.T) {
	h, alice, bob := startTwoPlayerGame(t)

	send(h, alice, protocol.MsgNewGame, nil)
	if msg := lastError(t, alice); msg.Message != errGameRunning.Error() {
		t.Errorf("new game during play: %+v", msg)
	}

	p, _ := h.game.GetPlayer("Alice")
	p.Coins = 7
	send(h, alice, protocol.MsgCoup, protocol.ActionMsg{Target: "Bob"})

	envs := drain(t, bob)
	env, ok := last(envs, protocol.MsgGameOver)
	if !ok {
		t.Fatalf("expected game_over, got %+v", envs)
	}
	var over protocol.GameOverMsg
	json.Unmarshal(env.Payload, &over)
	if over.Winner != "Alice" {
		t.Errorf("winner: got %q", over.Winner)
	}

	send(h, alice, protocol.MsgGather, nil)
	if msg := lastError(t, alice); msg.Message != errGameOver.Error() {
		t.Errorf("action after game over: %+v", msg)
	}

	send(h, bob, protocol.MsgNewGame, nil)
	if h.game != nil {
		t.Fatal("new game should discard the finished match")
	}
	if h.lobby.IsStarted() {
		t.Error("lobby should reopen")
	}
	for _, lp := range h.lobby.GetPlayers() {
		if lp.Ready {
			t.Errorf("%s still ready", lp.Name)
		}
	}
}

func TestHubAbilityAction(t *testing.T) {
	h, alice, bob := startTwoPlayerGame(t)
	p, _ := h.game.GetPlayer("Alice")
	p.Coins = 4

	send(h, bob, protocol.MsgAbility, protocol.ActionMsg{Target: "Alice"})
	envs := drain(t, bob)
	if _, ok := last(envs, protocol.MsgError); ok {
		t.Fatalf("spy ability failed: %+v", envs)
	}
	if !p.ArrestBlocked {
		t.Error("alice should be blocked from arresting")
	}

	send(h, alice, protocol.MsgArrest, protocol.ActionMsg{Target: "Bob"})
	if msg := lastError(t, alice); msg.Code != string(engine.CodeArrestBlocked) {
		t.Errorf("arrest error: %+v", msg)
	}
}

func TestParseAction(t *testing.T) {
	h := newTestHub()
	action, err := h.parseAction(protocol.MustEnvelope(protocol.MsgSanction, protocol.ActionMsg{Target: "Bob"}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if action.Type != engine.ActionSanction || action.Target != "Bob" {
		t.Errorf("action: %+v", action)
	}

	action, err = h.parseAction(protocol.Envelope{Type: protocol.MsgTax})
	if err != nil || action.Type != engine.ActionTax {
		t.Errorf("empty payload: %+v %v", action, err)
	}

	if _, err := h.parseAction(protocol.Envelope{Type: protocol.MsgCoup, Payload: []byte(`"oops"`)}); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestHubSkipsDisconnectedClient(t *testing.T) {
	h, alice, bob := startTwoPlayerGame(t)
	drain(t, bob)

	if h.handleUnregister(bob) {
		t.Fatal("a running game should keep the room open")
	}
	if _, open := <-bob.send; open {
		t.Fatal("send channel should be closed")
	}
	if len(h.lobby.GetPlayers()) != 2 {
		t.Error("seats are kept once the game has started")
	}

	// Commands Bob queued before disconnecting are still handled.
	send(h, bob, protocol.MsgGather, nil)
	h.handleMessage(IncomingMessage{Client: bob, Envelope: protocol.Envelope{Type: protocol.MsgCoup, Payload: []byte(`"oops"`)}})
	send(h, alice, protocol.MsgGather, nil)
	if view := playerState(t, alice); view.IsMyTurn {
		t.Errorf("turn should pass to Bob: %+v", view)
	}

	if h.handleUnregister(bob) {
		t.Error("second unregister should be a no-op")
	}
}

func TestHubReleasesSeatBeforeStart(t *testing.T) {
	h := newTestHub()
	alice := attach(h, "", ClientPlayer)
	bob := attach(h, "", ClientPlayer)
	send(h, alice, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Alice"})
	send(h, bob, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "b", Name: "Bob"})
	drain(t, alice)

	if h.handleUnregister(bob) {
		t.Fatal("room with a connected player is not idle")
	}
	players := h.lobby.GetPlayers()
	if len(players) != 1 || players[0].Name != "Alice" {
		t.Fatalf("players: %+v", players)
	}
	env, ok := last(drain(t, alice), protocol.MsgLobbyUpdate)
	if !ok {
		t.Fatal("expected lobby update")
	}
	var update protocol.LobbyUpdate
	json.Unmarshal(env.Payload, &update)
	if len(update.Players) != 1 {
		t.Errorf("lobby update: %+v", update)
	}
}

func TestHubKeepsSeatWithSecondConnection(t *testing.T) {
	h := newTestHub()
	phone := attach(h, "", ClientPlayer)
	send(h, phone, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Alice"})
	tablet := attach(h, "a", ClientPlayer)

	h.handleUnregister(phone)
	if _, ok := h.lobby.Player("a"); !ok {
		t.Error("seat held by another connection should stay")
	}
	drain(t, tablet)
}

func TestHubClosesWhenIdle(t *testing.T) {
	h := newTestHub()
	var closed string
	h.onIdle = func(id string) { closed = id }

	alice := attach(h, "", ClientPlayer)
	send(h, alice, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Alice"})

	if !h.handleUnregister(alice) {
		t.Fatal("empty room should close")
	}
	if closed != "room" {
		t.Errorf("onIdle: got %q", closed)
	}
	select {
	case <-h.quit:
	default:
		t.Error("hub should be stopped")
	}
	if h.Register(attach(newTestHub(), "", ClientSpectator)) {
		t.Error("register on a stopped hub should fail")
	}
}

func TestHubStaysOpenMidGame(t *testing.T) {
	h, alice, bob := startTwoPlayerGame(t)
	h.onIdle = func(string) { t.Error("running game must not close") }
	h.handleUnregister(alice)
	h.handleUnregister(bob)
	select {
	case <-h.quit:
		t.Error("hub stopped mid-game")
	default:
	}
}
