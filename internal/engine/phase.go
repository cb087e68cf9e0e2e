package engine

// GamePhase is derived from the roster; the engine keeps no separate
// phase field.
type GamePhase int

const (
	PhaseSetup    GamePhase = iota // fewer than MinPlayers seated
	PhasePlaying                   // two or more players still alive
	PhaseGameOver                  // one player left standing
)

var phaseNames = map[GamePhase]string{
	PhaseSetup:    "Setup",
	PhasePlaying:  "Playing",
	PhaseGameOver: "GameOver",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Phase reports where the match stands.
func (g *Game) Phase() GamePhase {
	if len(g.players) < MinPlayers {
		return PhaseSetup
	}
	if g.ActivePlayerCount() <= 1 {
		return PhaseGameOver
	}
	return PhasePlaying
}
