package abilities

import "coup/internal/engine"

// Register adds every role ability to r.
func Register(r *engine.AbilityRegistry) {
	r.Register(Governor{})
	r.Register(Spy{})
	r.Register(Baron{})
	r.Register(General{})
	r.Register(Judge{})
	r.Register(Merchant{})
}

// NewRegistry returns a registry holding all six role abilities.
func NewRegistry() *engine.AbilityRegistry {
	r := engine.NewAbilityRegistry()
	Register(r)
	return r
}

// holder resolves the acting player and checks that they hold role.
func holder(g *engine.Game, name string, role engine.Role) (*engine.Player, error) {
	p, err := g.GetPlayer(name)
	if err != nil {
		return nil, err
	}
	if err := requireRole(p, role); err != nil {
		return nil, err
	}
	return p, nil
}

func requireRole(p *engine.Player, role engine.Role) error {
	if p.Role != role {
		return engine.ErrInvalidAction
	}
	return nil
}

func abilityEvent(actor string, ability, message string, extra map[string]interface{}) []engine.Event {
	data := map[string]interface{}{
		"ability": ability,
		"message": message,
	}
	for k, v := range extra {
		data[k] = v
	}
	return []engine.Event{{Type: engine.EventAbilityUsed, Player: actor, Data: data}}
}
