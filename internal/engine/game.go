package engine

// CoupRecord is a coup a General may still undo.
type CoupRecord struct {
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
}

// HistoryEntry is one logged action. Only taxes are logged.
type HistoryEntry struct {
	Actor  string     `json:"actor"`
	Action ActionType `json:"action"`
	Round  int        `json:"round"`
}

// Game holds the entire state of one match. It is not safe for concurrent
// use; callers serving several goroutines must serialize access per match.
type Game struct {
	players   []*Player
	abilities *AbilityRegistry

	turnIndex  int
	globalTurn int
	round      int

	coups        []CoupRecord
	history      []HistoryEntry
	taxTurns     map[string]int // name -> global turn of the player's last tax
	lastArrested string

	events []Event // queued until Apply or DrainEvents
}

// NewGame creates an empty match using the given role abilities.
func NewGame(abilities *AbilityRegistry) *Game {
	if abilities == nil {
		abilities = NewAbilityRegistry()
	}
	return &Game{
		abilities: abilities,
		round:     1,
		taxTurns:  make(map[string]int),
	}
}

// AddPlayer seats p after the players already at the table.
func (g *Game) AddPlayer(p *Player) error {
	if len(g.players) >= MaxPlayers {
		return ErrMaxPlayersExceeded
	}
	for _, existing := range g.players {
		if existing.Name == p.Name {
			return ErrDuplicatePlayerName
		}
	}
	p.game = g
	g.players = append(g.players, p)
	return nil
}

// Join creates a player with the given role and seats it.
func (g *Game) Join(name string, role Role) (*Player, error) {
	p := NewPlayer(g, name, role)
	if err := g.AddPlayer(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Turn returns the name of the player whose turn it is.
func (g *Game) Turn() (string, error) {
	if len(g.players) == 0 {
		return "", ErrGameNotStarted
	}
	return g.players[g.turnIndex].Name, nil
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() (*Player, error) {
	if len(g.players) == 0 {
		return nil, ErrNoPlayersLeft
	}
	return g.players[g.turnIndex], nil
}

// Players returns the roster in seating order, eliminated players included.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// PlayerNames returns every seated name in seating order.
func (g *Game) PlayerNames() []string {
	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	return names
}

// GetPlayer finds a player by name.
func (g *Game) GetPlayer(name string) (*Player, error) {
	for _, p := range g.players {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, PlayerNotFound(name)
}

// Winner returns the last player standing.
func (g *Game) Winner() (string, error) {
	alive := 0
	var name string
	for _, p := range g.players {
		if !p.Eliminated {
			alive++
			name = p.Name
		}
	}
	switch {
	case alive == 0:
		return "", ErrGameNotStarted
	case alive > 1:
		return "", ErrGameStillOngoing
	}
	return name, nil
}

// ActivePlayerCount counts players who are not eliminated.
func (g *Game) ActivePlayerCount() int {
	n := 0
	for _, p := range g.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

func (g *Game) Round() int { return g.round }

func (g *Game) GlobalTurn() int { return g.globalTurn }

func (g *Game) LastArrested() string { return g.lastArrested }

// NextTurn hands the turn on. A pending extra turn is consumed instead of
// moving the seat. Otherwise the next living seat becomes current; when
// the advance wraps past the last seat a new round begins and every
// ability gate reopens. Coups made by the new current player expire, the
// new player's turn starts, and the previous player's arrest block ticks.
func (g *Game) NextTurn() {
	if len(g.players) == 0 {
		return
	}
	prev := g.players[g.turnIndex]
	if prev.ExtraTurns > 0 {
		prev.ExtraTurns--
		g.emit(Event{Type: EventExtraTurn, Player: prev.Name, Data: map[string]interface{}{
			"remaining": prev.ExtraTurns,
		}})
		return
	}

	from := g.turnIndex
	g.turnIndex = g.nextLivingSeat(from)
	g.globalTurn++
	current := g.players[g.turnIndex]

	if g.turnIndex <= from {
		g.round++
		for _, p := range g.players {
			p.AbilityUsed = false
		}
		g.emit(Event{Type: EventRoundStart, Data: map[string]interface{}{"round": g.round}})
	}

	g.expireCoupsBy(current.Name)

	g.emit(Event{Type: EventTurnStart, Player: current.Name, Data: map[string]interface{}{
		"turn":  g.globalTurn,
		"round": g.round,
	}})
	current.StartNewTurn()
	prev.tickArrestBlock()
}

// nextLivingSeat returns the first living seat after from, wrapping. It
// returns from itself when nobody else is alive.
func (g *Game) nextLivingSeat(from int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if !g.players[idx].Eliminated {
			return idx
		}
	}
	return from
}

// RemovePlayer eliminates a player without taking them off the roster, so
// their name stays valid for history lookups. Removing the current player
// passes the turn on.
func (g *Game) RemovePlayer(name string) error {
	p, err := g.GetPlayer(name)
	if err != nil {
		return err
	}
	if p.Eliminated {
		return ErrTargetIsAlreadyEliminated
	}
	g.eliminate(p)
	if g.players[g.turnIndex] == p && g.ActivePlayerCount() > 0 {
		g.NextTurn()
	}
	return nil
}

func (g *Game) eliminate(p *Player) {
	p.MarkEliminated()
	g.emit(Event{Type: EventEliminated, Player: p.Name})
}

// CoupList returns the coups that can still be undone.
func (g *Game) CoupList() []CoupRecord {
	out := make([]CoupRecord, len(g.coups))
	copy(out, g.coups)
	return out
}

// HasCoupOn reports whether target is the victim of an undoable coup.
func (g *Game) HasCoupOn(target string) bool {
	for _, c := range g.coups {
		if c.Target == target {
			return true
		}
	}
	return false
}

// RemoveCoupOn drops every coup record with target as the victim and
// returns how many were removed.
func (g *Game) RemoveCoupOn(target string) int {
	kept := g.coups[:0]
	removed := 0
	for _, c := range g.coups {
		if c.Target == target {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	g.coups = kept
	return removed
}

func (g *Game) expireCoupsBy(attacker string) {
	kept := g.coups[:0]
	for _, c := range g.coups {
		if c.Attacker == attacker {
			g.emit(Event{Type: EventCoupExpired, Player: attacker, Data: map[string]interface{}{
				"target": c.Target,
			}})
			continue
		}
		kept = append(kept, c)
	}
	g.coups = kept
}

// History returns the action log, oldest first.
func (g *Game) History() []HistoryEntry {
	out := make([]HistoryEntry, len(g.history))
	copy(out, g.history)
	return out
}

// LastAction finds the most recent logged action of the given kind and its
// index in the log.
func (g *Game) LastAction(kind ActionType) (HistoryEntry, int, bool) {
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].Action == kind {
			return g.history[i], i, true
		}
	}
	return HistoryEntry{}, -1, false
}

// DropAction removes the log entry at index i.
func (g *Game) DropAction(i int) {
	if i < 0 || i >= len(g.history) {
		return
	}
	g.history = append(g.history[:i], g.history[i+1:]...)
}

// TaxTurn returns the global turn of name's last tax.
func (g *Game) TaxTurn(name string) (int, bool) {
	t, ok := g.taxTurns[name]
	return t, ok
}

func (g *Game) recordTax(name string) {
	g.history = append(g.history, HistoryEntry{Actor: name, Action: ActionTax, Round: g.round})
	g.taxTurns[name] = g.globalTurn
}

func (g *Game) emit(events ...Event) {
	g.events = append(g.events, events...)
}

// DrainEvents returns and clears the events queued since the last drain.
func (g *Game) DrainEvents() []Event {
	events := g.events
	g.events = nil
	return events
}
