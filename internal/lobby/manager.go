package lobby

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Summary describes a lobby for room listings.
type Summary struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Max     int    `json:"max_players"`
	Started bool   `json:"started"`
}

// Manager manages multiple lobbies.
type Manager struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby

	allowRoleChoice bool
}

func NewManager(allowRoleChoice bool) *Manager {
	return &Manager{
		lobbies:         make(map[string]*Lobby),
		allowRoleChoice: allowRoleChoice,
	}
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateID()
	for m.lobbies[id] != nil {
		id = generateID()
	}
	lob := NewLobby(id)
	lob.AllowRoleChoice = m.allowRoleChoice
	m.lobbies[id] = lob
	return id
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// Remove drops a lobby.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, id)
}

// List summarizes every lobby, ordered by ID.
func (m *Manager) List() []Summary {
	m.mu.Lock()
	lobbies := make([]*Lobby, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		lobbies = append(lobbies, l)
	}
	m.mu.Unlock()

	out := make([]Summary, 0, len(lobbies))
	for _, l := range lobbies {
		l.mu.Lock()
		out = append(out, Summary{
			ID:      l.ID,
			Players: len(l.Players),
			Max:     l.MaxPlayers,
			Started: l.Started,
		})
		l.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// generateID returns a short room code: the first block of a random UUID.
func generateID() string {
	return uuid.NewString()[:8]
}
