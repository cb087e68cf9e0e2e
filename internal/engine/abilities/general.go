package abilities

import (
	"fmt"

	"coup/internal/engine"
)

// General: once per round, pays 5 coins to bring back a player whose coup
// is still on record. Arresting a General costs them nothing (handled by
// engine.Player.Arrest).
type General struct{}

func (gen General) Role() engine.Role { return engine.RoleGeneral }
func (gen General) NeedsTarget() bool { return true }
func (gen General) IsPassive() bool   { return false }

// ValidTargets lists eliminated players with an undoable coup on record.
func (gen General) ValidTargets(g *engine.Game, actor string) []string {
	var targets []string
	seen := make(map[string]bool)
	for _, c := range g.CoupList() {
		if seen[c.Target] {
			continue
		}
		seen[c.Target] = true
		if p, err := g.GetPlayer(c.Target); err == nil && p.Eliminated {
			targets = append(targets, p.Name)
		}
	}
	return targets
}

func (gen General) Apply(g *engine.Game, actor string, action engine.Action) ([]engine.Event, error) {
	p, err := holder(g, actor, engine.RoleGeneral)
	if err != nil {
		return nil, err
	}
	target, err := g.GetPlayer(action.Target)
	if err != nil {
		return nil, err
	}
	msg, err := gen.UndoCoup(g, p, target)
	if err != nil {
		return nil, err
	}
	events := abilityEvent(actor, "undo_coup", msg, map[string]interface{}{
		"target": target.Name,
	})
	events = append(events, engine.Event{Type: engine.EventRevived, Player: target.Name})
	return events, nil
}

// UndoCoup revives target and clears their coup records.
func (gen General) UndoCoup(g *engine.Game, general, target *engine.Player) (string, error) {
	if err := requireRole(general, engine.RoleGeneral); err != nil {
		return "", err
	}
	if general.AbilityUsed {
		return "", engine.ActionAlreadyUsedThisRound(general.Name, engine.RoleGeneral.AbilityName())
	}
	if general.Coins < engine.UndoCoupCost {
		return "", engine.NotEnoughCoins(engine.UndoCoupCost, general.Coins)
	}
	if !target.Eliminated {
		return "", engine.ErrTargetNotEliminated
	}
	if !g.HasCoupOn(target.Name) {
		return "", engine.NoCoupToUndo(target.Name)
	}

	general.Coins -= engine.UndoCoupCost
	if err := target.Revive(); err != nil {
		return "", err
	}
	g.RemoveCoupOn(target.Name)
	general.AbilityUsed = true
	return fmt.Sprintf("%s undid the coup on %s", general.Name, target.Name), nil
}
