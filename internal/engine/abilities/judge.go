package abilities

import (
	"fmt"

	"coup/internal/engine"
)

// Judge: once per round cancels another player's bribe. Sanctioning a
// Judge costs 4 instead of 3 (see engine.Role.SanctionCost).
type Judge struct{}

func (j Judge) Role() engine.Role { return engine.RoleJudge }
func (j Judge) NeedsTarget() bool { return true }
func (j Judge) IsPassive() bool   { return false }

// ValidTargets lists living players other than the judge who bribed.
func (j Judge) ValidTargets(g *engine.Game, actor string) []string {
	var targets []string
	for _, p := range g.Players() {
		if p.Name == actor || p.Eliminated || !p.UsedBribe {
			continue
		}
		targets = append(targets, p.Name)
	}
	return targets
}

func (j Judge) Apply(g *engine.Game, actor string, action engine.Action) ([]engine.Event, error) {
	p, err := holder(g, actor, engine.RoleJudge)
	if err != nil {
		return nil, err
	}
	target, err := g.GetPlayer(action.Target)
	if err != nil {
		return nil, err
	}
	msg, err := j.UndoBribe(g, p, target)
	if err != nil {
		return nil, err
	}
	return abilityEvent(actor, "undo_bribe", msg, map[string]interface{}{
		"target": target.Name,
	}), nil
}

// UndoBribe negates target's bribe. With one extra turn still pending the
// extra turn is simply cancelled; once the bribe has been used up the turn
// is passed on immediately instead.
func (j Judge) UndoBribe(g *engine.Game, judge, target *engine.Player) (string, error) {
	if err := requireRole(judge, engine.RoleJudge); err != nil {
		return "", err
	}
	if judge.Eliminated {
		return "", engine.PlayerEliminated(judge.Name)
	}
	if !target.UsedBribe {
		return "", engine.UndoNotAllowed(target.Name, string(engine.ActionBribe))
	}
	if target.Name == judge.Name {
		return "", engine.CannotUndoOwnAction(judge.Name, string(engine.ActionBribe))
	}
	if judge.AbilityUsed {
		return "", engine.ActionAlreadyUsedThisRound(judge.Name, engine.RoleJudge.AbilityName())
	}
	if target.Eliminated {
		return "", engine.ErrTargetIsEliminated
	}

	var msg string
	switch target.ExtraTurns {
	case 1:
		target.ExtraTurns = 0
		msg = fmt.Sprintf("%s canceled %s's bribe", judge.Name, target.Name)
	case 0:
		msg = fmt.Sprintf("%s canceled %s's bribe after it took effect", judge.Name, target.Name)
		g.NextTurn()
	default:
		return "", engine.ErrInvalidBribeUndo
	}
	judge.AbilityUsed = true
	return msg, nil
}
