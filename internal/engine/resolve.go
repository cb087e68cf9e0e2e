package engine

// Apply is the single entry point for player commands. It resolves the
// target by name, runs the command and returns the events it produced.
// Events queued earlier by direct calls stay queued for DrainEvents. On
// failure no events are returned and the queue is left as it was.
func (g *Game) Apply(playerName string, action Action) ([]Event, error) {
	p, err := g.GetPlayer(playerName)
	if err != nil {
		return nil, err
	}

	mark := len(g.events)
	if err := g.resolve(p, action); err != nil {
		g.events = g.events[:mark]
		return nil, err
	}

	if len(g.players) >= MinPlayers {
		if winner, err := g.Winner(); err == nil {
			g.emit(Event{Type: EventGameOver, Player: winner, Data: map[string]interface{}{
				"winner": winner,
				"round":  g.round,
			}})
		}
	}
	produced := append([]Event(nil), g.events[mark:]...)
	g.events = g.events[:mark]
	return produced, nil
}

func (g *Game) resolve(p *Player, action Action) error {
	var target *Player
	if action.Type.NeedsTarget() {
		t, err := g.GetPlayer(action.Target)
		if err != nil {
			return err
		}
		target = t
	}

	switch action.Type {
	case ActionGather:
		return p.Gather()
	case ActionTax:
		return p.Tax()
	case ActionBribe:
		return p.Bribe()
	case ActionArrest:
		return p.Arrest(target)
	case ActionSanction:
		return p.Sanction(target)
	case ActionCoup:
		return p.Coup(target)
	case ActionAbility:
		return g.useAbility(p, action)
	default:
		return ErrInvalidAction
	}
}

// useAbility runs the actor's role ability. Its own events are placed
// ahead of whatever the ability triggered, such as a turn change.
func (g *Game) useAbility(p *Player, action Action) error {
	a, err := g.abilities.Get(p.Role)
	if err != nil {
		return ErrInvalidAction
	}
	if a.IsPassive() {
		return ErrInvalidAction
	}

	mark := len(g.events)
	events, err := a.Apply(g, p.Name, action)
	if err != nil {
		return err
	}
	triggered := append([]Event(nil), g.events[mark:]...)
	g.events = append(append(g.events[:mark], events...), triggered...)
	return nil
}
