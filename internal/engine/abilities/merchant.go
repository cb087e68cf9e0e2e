package abilities

import "coup/internal/engine"

// Merchant: gets 1 bonus coin at the start of each turn when holding at
// least 3. Arrested Merchants pay 2 coins to the treasury instead of 1 to
// the arresting player (handled by engine.Player.Arrest). Passive.
type Merchant struct{}

func (m Merchant) Role() engine.Role { return engine.RoleMerchant }
func (m Merchant) NeedsTarget() bool { return false }
func (m Merchant) IsPassive() bool   { return true }

func (m Merchant) ValidTargets(g *engine.Game, actor string) []string {
	return nil
}

// Apply refuses direct use; the bonus is granted by Player.StartNewTurn.
func (m Merchant) Apply(g *engine.Game, actor string, action engine.Action) ([]engine.Event, error) {
	if _, err := holder(g, actor, engine.RoleMerchant); err != nil {
		return nil, err
	}
	return nil, engine.ErrInvalidAction
}
