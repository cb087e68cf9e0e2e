package abilities

import (
	"fmt"

	"coup/internal/engine"
)

// Spy: once per round, at any time, looks at another player's coins and
// stops them from arresting until their next turn ends.
type Spy struct{}

func (s Spy) Role() engine.Role { return engine.RoleSpy }
func (s Spy) NeedsTarget() bool { return true }
func (s Spy) IsPassive() bool   { return false }

func (s Spy) ValidTargets(g *engine.Game, actor string) []string {
	var targets []string
	for _, p := range g.Players() {
		if p.Name == actor || p.Eliminated {
			continue
		}
		targets = append(targets, p.Name)
	}
	return targets
}

func (s Spy) Apply(g *engine.Game, actor string, action engine.Action) ([]engine.Event, error) {
	p, err := holder(g, actor, engine.RoleSpy)
	if err != nil {
		return nil, err
	}
	target, err := g.GetPlayer(action.Target)
	if err != nil {
		return nil, err
	}
	msg, err := s.PeekAndDisable(g, p, target)
	if err != nil {
		return nil, err
	}
	return abilityEvent(actor, "peek_and_disable", msg, map[string]interface{}{
		"target": target.Name,
	}), nil
}

// PeekAndDisable returns a message revealing target's coins.
func (s Spy) PeekAndDisable(g *engine.Game, spy, target *engine.Player) (string, error) {
	if err := requireRole(spy, engine.RoleSpy); err != nil {
		return "", err
	}
	if spy.Eliminated {
		return "", engine.PlayerEliminated(spy.Name)
	}
	if target.Name == spy.Name {
		return "", engine.ErrCannotTargetYourself
	}
	if spy.AbilityUsed {
		return "", engine.ActionAlreadyUsedThisRound(spy.Name, engine.RoleSpy.AbilityName())
	}
	if target.Eliminated {
		return "", engine.ErrTargetIsEliminated
	}

	target.BlockArrest(engine.ArrestBlockTurns)
	spy.AbilityUsed = true
	return fmt.Sprintf("%s peeked and disabled %s (coins: %d)", spy.Name, target.Name, target.Coins), nil
}
