package abilities

import (
	"fmt"

	"coup/internal/engine"
)

// Baron: on their own turn may invest 3 coins and receive 6. Sanctioning a
// Baron compensates them one coin (handled by engine.Player.Sanction).
type Baron struct{}

func (b Baron) Role() engine.Role { return engine.RoleBaron }
func (b Baron) NeedsTarget() bool { return false }
func (b Baron) IsPassive() bool   { return false }

func (b Baron) ValidTargets(g *engine.Game, actor string) []string {
	return nil
}

func (b Baron) Apply(g *engine.Game, actor string, action engine.Action) ([]engine.Event, error) {
	p, err := holder(g, actor, engine.RoleBaron)
	if err != nil {
		return nil, err
	}
	msg, err := b.Invest(g, p)
	if err != nil {
		return nil, err
	}
	return abilityEvent(actor, "invest", msg, map[string]interface{}{
		"coins": p.Coins,
	}), nil
}

// Invest is a primary action: it uses the baron's turn. It is not gated per
// round.
func (b Baron) Invest(g *engine.Game, baron *engine.Player) (string, error) {
	if err := requireRole(baron, engine.RoleBaron); err != nil {
		return "", err
	}
	if err := baron.CheckTurn(); err != nil {
		return "", err
	}
	if baron.MustCoup {
		return "", engine.ErrMustPerformCoup
	}
	if baron.Coins < engine.InvestCost {
		return "", engine.NotEnoughCoins(engine.InvestCost, baron.Coins)
	}
	baron.Coins += engine.InvestReturn - engine.InvestCost
	msg := fmt.Sprintf("%s invested and now has %d coins", baron.Name, baron.Coins)
	g.NextTurn()
	return msg, nil
}
