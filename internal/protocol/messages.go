package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"   // public view, sent to spectators
	MsgPlayerState = "player_state" // per-player view
	MsgGameOver    = "game_over"
	MsgError       = "error"
	MsgEvent       = "event"
)

// Message types: Client → Server
const (
	MsgJoin       = "join"
	MsgReady      = "ready"
	MsgChooseRole = "choose_role"
	MsgStartGame  = "start_game"
	MsgNewGame    = "new_game"

	// In-game actions use the same names as engine ActionType
	MsgGather   = "gather"
	MsgTax      = "tax"
	MsgBribe    = "bribe"
	MsgArrest   = "arrest"
	MsgSanction = "sanction"
	MsgCoup     = "coup"
	MsgAbility  = "ability"
)

// Error codes for transport problems. Rule violations carry the engine's
// codes instead.
const (
	CodeMalformed   = "MALFORMED_MESSAGE"
	CodeUnknownType = "UNKNOWN_MESSAGE_TYPE"
)

var clientTypes = map[string]bool{
	MsgJoin: true, MsgReady: true, MsgChooseRole: true, MsgStartGame: true, MsgNewGame: true,
	MsgGather: true, MsgTax: true, MsgBribe: true, MsgArrest: true, MsgSanction: true,
	MsgCoup: true, MsgAbility: true,
}

// IsClientType reports whether clients may send messages of type t.
func IsClientType(t string) bool {
	return clientTypes[t]
}

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID          string        `json:"game_id"`
	Players         []LobbyPlayer `json:"players"`
	Started         bool          `json:"started"`
	AllowRoleChoice bool          `json:"allow_role_choice"`
}

// LobbyPlayer never carries the role; players only learn their own role
// from their player_state.
type LobbyPlayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Ready      bool   `json:"ready"`
	RoleChosen bool   `json:"role_chosen"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// ChooseRoleMsg picks a role before the game starts. An empty role
// releases the choice.
type ChooseRoleMsg struct {
	Role string `json:"role"`
}

// ActionMsg is the payload of every in-game action.
type ActionMsg struct {
	Target string `json:"target,omitempty"`
}

// GameOverMsg announces the winner.
type GameOverMsg struct {
	Winner string `json:"winner"`
	Round  int    `json:"round"`
}

// ErrorMsg is sent to a client on error. Code is set for rule violations.
type ErrorMsg struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
