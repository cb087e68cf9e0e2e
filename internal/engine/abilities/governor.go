package abilities

import (
	"fmt"

	"coup/internal/engine"
)

// Governor: taxes for 3 instead of 2 (see engine.Role.TaxAmount) and once
// per round may cancel the most recent tax taken by another player.
type Governor struct{}

func (gv Governor) Role() engine.Role { return engine.RoleGovernor }
func (gv Governor) NeedsTarget() bool { return false }
func (gv Governor) IsPassive() bool   { return false }

func (gv Governor) ValidTargets(g *engine.Game, actor string) []string {
	return nil
}

func (gv Governor) Apply(g *engine.Game, actor string, action engine.Action) ([]engine.Event, error) {
	p, err := holder(g, actor, engine.RoleGovernor)
	if err != nil {
		return nil, err
	}
	msg, err := gv.UndoTax(g, p)
	if err != nil {
		return nil, err
	}
	return abilityEvent(actor, "undo_tax", msg, nil), nil
}

// UndoTax finds the most recent tax in the history and takes its income
// back. Only that entry is considered: if it is stale, the governor's own,
// or belongs to an eliminated player, the undo fails rather than reaching
// further back. A tax is stale once more turns have passed since it than
// there are other living players.
func (gv Governor) UndoTax(g *engine.Game, governor *engine.Player) (string, error) {
	if err := requireRole(governor, engine.RoleGovernor); err != nil {
		return "", err
	}
	if governor.Eliminated {
		return "", engine.PlayerEliminated(governor.Name)
	}
	if governor.AbilityUsed {
		return "", engine.ActionAlreadyUsedThisRound(governor.Name, engine.RoleGovernor.AbilityName())
	}

	entry, idx, ok := g.LastAction(engine.ActionTax)
	if !ok {
		return "", engine.NoRecentActionToUndo(string(engine.ActionTax))
	}
	taxedAt, _ := g.TaxTurn(entry.Actor)
	if g.GlobalTurn()-taxedAt > g.ActivePlayerCount()-1 {
		return "", engine.ActionTooOld(entry.Actor, string(engine.ActionTax))
	}
	if entry.Actor == governor.Name {
		return "", engine.CannotUndoOwnAction(governor.Name, string(engine.ActionTax))
	}
	target, err := g.GetPlayer(entry.Actor)
	if err != nil {
		return "", err
	}
	if target.Eliminated {
		return "", engine.ErrTargetIsEliminated
	}
	if err := target.DecreaseCoins(target.Role.TaxAmount()); err != nil {
		return "", err
	}

	g.DropAction(idx)
	governor.AbilityUsed = true
	return fmt.Sprintf("%s canceled %s's tax", governor.Name, target.Name), nil
}
