package lobby

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"coup/internal/engine"
)

var (
	ErrStarted       = errors.New("game already started")
	ErrNotStarted    = errors.New("game not started")
	ErrFull          = errors.New("lobby is full")
	ErrNameTaken     = errors.New("name already taken")
	ErrEmptyName     = errors.New("name must not be empty")
	ErrUnknownPlayer = errors.New("player not in lobby")
	ErrRoleTaken     = errors.New("role already taken")
	ErrRoleChoiceOff = errors.New("role choice is disabled for this room")
	ErrNotReady      = errors.New("not all players ready")
	ErrTooFewPlayers = errors.New("not enough players")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
	Role  engine.Role // zero until chosen or dealt
	Chose bool        // Role was picked by the player, not dealt
}

// Lobby represents a game lobby waiting for players.
type Lobby struct {
	mu              sync.Mutex
	ID              string
	Players         []*PlayerInfo
	MaxPlayers      int
	MinPlayers      int
	AllowRoleChoice bool
	Started         bool
}

// NewLobby creates a new lobby.
func NewLobby(id string) *Lobby {
	return &Lobby{
		ID:              id,
		MaxPlayers:      engine.MaxPlayers,
		MinPlayers:      engine.MinPlayers,
		AllowRoleChoice: true,
	}
}

// Join adds a player to the lobby. Joining again with a known id renames
// the seat.
func (l *Lobby) Join(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var seat *PlayerInfo
	for _, p := range l.Players {
		if p.ID == id {
			seat = p
			continue
		}
		if strings.EqualFold(p.Name, name) {
			return ErrNameTaken
		}
	}
	if seat != nil {
		if l.Started && seat.Name != name {
			return ErrStarted
		}
		seat.Name = name
		return nil
	}

	if l.Started {
		return ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return ErrFull
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// Leave removes a player from the lobby. Seats are kept once the game
// has started.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady sets a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.find(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.Ready = ready
	return nil
}

// ChooseRole reserves role for a player. The zero role releases the
// player's choice so a role is dealt at start instead.
func (l *Lobby) ChooseRole(id string, role engine.Role) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if !l.AllowRoleChoice {
		return ErrRoleChoiceOff
	}
	p := l.find(id)
	if p == nil {
		return ErrUnknownPlayer
	}
	if role == 0 {
		p.Role, p.Chose = 0, false
		return nil
	}
	if !role.Valid() {
		return fmt.Errorf("invalid role %d", role)
	}
	for _, other := range l.Players {
		if other != p && other.Role == role {
			return ErrRoleTaken
		}
	}
	p.Role, p.Chose = role, true
	return nil
}

// CanStart returns true if enough players are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStart() == nil
}

func (l *Lobby) canStart() error {
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) < l.MinPlayers {
		return ErrTooFewPlayers
	}
	for _, p := range l.Players {
		if !p.Ready {
			return ErrNotReady
		}
	}
	return nil
}

// Start marks the lobby as started and deals a role to every seat that
// has none.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.canStart(); err != nil {
		return err
	}
	l.assignRoles()
	l.Started = true
	return nil
}

// assignRoles deals the roles nobody picked, shuffled, to the seats
// without one.
func (l *Lobby) assignRoles() {
	taken := make(map[engine.Role]bool)
	for _, p := range l.Players {
		if p.Role != 0 {
			taken[p.Role] = true
		}
	}
	var deck []engine.Role
	for _, r := range engine.AllRoles() {
		if !taken[r] {
			deck = append(deck, r)
		}
	}
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	for _, p := range l.Players {
		if p.Role == 0 {
			p.Role = deck[0]
			deck = deck[1:]
		}
	}
}

// Reset reopens a finished lobby for a new game. Seats stay; ready flags
// and dealt roles are cleared, picked roles are kept.
func (l *Lobby) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.Started {
		return ErrNotStarted
	}
	l.Started = false
	for _, p := range l.Players {
		p.Ready = false
		if !p.Chose {
			p.Role = 0
		}
	}
	return nil
}

// IsStarted reports whether the game has started.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}

// Player returns a copy of one seat.
func (l *Lobby) Player(id string) (PlayerInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.find(id)
	if p == nil {
		return PlayerInfo{}, false
	}
	return *p, true
}

func (l *Lobby) find(id string) *PlayerInfo {
	for _, p := range l.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
