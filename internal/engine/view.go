package engine

// PublicViewData is the table state everyone may see. Roles stay hidden
// until their holder is eliminated.
type PublicViewData struct {
	Phase        string             `json:"phase"`
	Round        int                `json:"round"`
	Turn         int                `json:"turn"`
	CurrentTurn  string             `json:"current_turn,omitempty"`
	Players      []PublicPlayerData `json:"players"`
	Coups        []CoupRecord       `json:"coups,omitempty"`
	LastArrested string             `json:"last_arrested,omitempty"`
	Winner       string             `json:"winner,omitempty"`
}

type PublicPlayerData struct {
	Name          string `json:"name"`
	Coins         int    `json:"coins"`
	Eliminated    bool   `json:"eliminated"`
	Sanctioned    bool   `json:"sanctioned"`
	ArrestBlocked bool   `json:"arrest_blocked"`
	ExtraTurns    int    `json:"extra_turns"`
	RevealedRole  string `json:"revealed_role,omitempty"`
}

func (g *Game) PublicView() PublicViewData {
	pv := PublicViewData{
		Phase:        g.Phase().String(),
		Round:        g.round,
		Turn:         g.globalTurn,
		Coups:        g.CoupList(),
		LastArrested: g.lastArrested,
	}
	if name, err := g.Turn(); err == nil {
		pv.CurrentTurn = name
	}
	if g.Phase() == PhaseGameOver {
		if name, err := g.Winner(); err == nil {
			pv.Winner = name
		}
	}

	for _, p := range g.players {
		ppd := PublicPlayerData{
			Name:          p.Name,
			Coins:         p.Coins,
			Eliminated:    p.Eliminated,
			Sanctioned:    p.Sanctioned,
			ArrestBlocked: p.ArrestBlocked,
			ExtraTurns:    p.ExtraTurns,
		}
		if p.Eliminated {
			ppd.RevealedRole = p.Role.String()
		}
		pv.Players = append(pv.Players, ppd)
	}
	return pv
}

// PlayerViewData is the state visible to one player.
type PlayerViewData struct {
	PublicViewData
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	IsMyTurn       bool     `json:"is_my_turn"`
	MustCoup       bool     `json:"must_coup"`
	Actions        []string `json:"actions,omitempty"`
	ActionTargets  []string `json:"action_targets,omitempty"`
	Ability        string   `json:"ability,omitempty"`
	CanUseAbility  bool     `json:"can_use_ability"`
	AbilityTargets []string `json:"ability_targets,omitempty"`
}

func (g *Game) ViewFor(name string) PlayerViewData {
	pv := PlayerViewData{
		PublicViewData: g.PublicView(),
	}

	p, err := g.GetPlayer(name)
	if err != nil {
		return pv
	}
	pv.Name = p.Name
	pv.Role = p.Role.String()
	pv.MustCoup = p.MustCoup
	pv.IsMyTurn = pv.CurrentTurn == p.Name && !p.Eliminated

	if pv.IsMyTurn && g.Phase() == PhasePlaying {
		pv.Actions = g.availableActions(p)
		for _, other := range g.players {
			if other != p && !other.Eliminated {
				pv.ActionTargets = append(pv.ActionTargets, other.Name)
			}
		}
	}

	if a, err := g.abilities.Get(p.Role); err == nil && !a.IsPassive() {
		pv.Ability = p.Role.AbilityName()
		pv.CanUseAbility = !p.AbilityUsed && !p.Eliminated && g.Phase() == PhasePlaying
		if pv.CanUseAbility && a.NeedsTarget() {
			pv.AbilityTargets = a.ValidTargets(g, p.Name)
		}
	}
	return pv
}

// availableActions lists the universal actions whose own preconditions
// hold for p, ignoring target-specific checks.
func (g *Game) availableActions(p *Player) []string {
	if p.MustCoup {
		return []string{string(ActionCoup)}
	}
	var actions []string
	if !p.Sanctioned {
		actions = append(actions, string(ActionGather), string(ActionTax))
	}
	if p.Coins >= BribeCost {
		actions = append(actions, string(ActionBribe))
	}
	if !p.ArrestBlocked {
		actions = append(actions, string(ActionArrest))
	}
	if p.Coins >= SanctionCost {
		actions = append(actions, string(ActionSanction))
	}
	if p.Coins >= CoupCost {
		actions = append(actions, string(ActionCoup))
	}
	return actions
}
