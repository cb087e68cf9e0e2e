package engine

import "fmt"

// ActionType identifies player commands sent to Game.Apply.
type ActionType string

const (
	ActionGather   ActionType = "gather"
	ActionTax      ActionType = "tax"
	ActionBribe    ActionType = "bribe"
	ActionArrest   ActionType = "arrest"
	ActionSanction ActionType = "sanction"
	ActionCoup     ActionType = "coup"
	ActionAbility  ActionType = "ability" // the actor's role ability
)

// Action is a player's command input.
type Action struct {
	Type ActionType `json:"type"`
	// Target is a player name; used by arrest, sanction, coup and the
	// targeted abilities.
	Target string `json:"target,omitempty"`
}

// NeedsTarget reports whether a universal action requires a target.
func (t ActionType) NeedsTarget() bool {
	switch t {
	case ActionArrest, ActionSanction, ActionCoup:
		return true
	}
	return false
}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventActionTaken EventType = "action_taken"
	EventAbilityUsed EventType = "ability_used"
	EventTurnStart   EventType = "turn_start"
	EventExtraTurn   EventType = "extra_turn"
	EventRoundStart  EventType = "round_start"
	EventCoupExpired EventType = "coup_expired"
	EventEliminated  EventType = "eliminated"
	EventRevived     EventType = "revived"
	EventGameOver    EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType   `json:"type"`
	Player string      `json:"player,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Ability defines a role's special ability.
type Ability interface {
	Role() Role
	// NeedsTarget returns true if the ability requires choosing a player.
	NeedsTarget() bool
	// IsPassive returns true if the ability triggers automatically at the
	// start of the holder's turn instead of being invoked.
	IsPassive() bool
	// ValidTargets returns the names the actor may currently target.
	ValidTargets(g *Game, actor string) []string
	// Apply executes the ability. Returns events and error.
	Apply(g *Game, actor string, action Action) ([]Event, error)
}

// AbilityRegistry maps roles to their abilities.
type AbilityRegistry struct {
	abilities map[Role]Ability
}

func NewAbilityRegistry() *AbilityRegistry {
	return &AbilityRegistry{abilities: make(map[Role]Ability)}
}

func (r *AbilityRegistry) Register(a Ability) {
	r.abilities[a.Role()] = a
}

func (r *AbilityRegistry) Get(role Role) (Ability, error) {
	a, ok := r.abilities[role]
	if !ok {
		return nil, fmt.Errorf("no ability registered for role %s", role)
	}
	return a, nil
}

// HasActive reports whether the role has an ability a player can invoke.
func (r *AbilityRegistry) HasActive(role Role) bool {
	a, err := r.Get(role)
	return err == nil && !a.IsPassive()
}
