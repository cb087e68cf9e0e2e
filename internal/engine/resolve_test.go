package engine_test

import (
	"testing"

	"coup/internal/engine"
)

func eventTypes(events []engine.Event) []engine.EventType {
	types := make([]engine.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func sameTypes(got []engine.Event, want ...engine.EventType) bool {
	if len(got) != len(want) {
		return false
	}
	for i, e := range got {
		if e.Type != want[i] {
			return false
		}
	}
	return true
}

func TestApplyGather(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleSpy)
	events, err := g.Apply(ps[0].Name, engine.Action{Type: engine.ActionGather})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sameTypes(events, engine.EventActionTaken, engine.EventTurnStart) {
		t.Fatalf("events: got %v", eventTypes(events))
	}
	if events[0].Player != ps[0].Name || events[1].Player != ps[1].Name {
		t.Errorf("event players: got %s, %s", events[0].Player, events[1].Player)
	}
}

func TestApplyUnknownPlayerAndTarget(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleSpy)

	_, err := g.Apply("Nobody", engine.Action{Type: engine.ActionGather})
	expectCode(t, err, engine.CodePlayerNotFound)

	_, err = g.Apply(ps[0].Name, engine.Action{Type: engine.ActionArrest, Target: "Nobody"})
	expectCode(t, err, engine.CodePlayerNotFound)

	_, err = g.Apply(ps[0].Name, engine.Action{Type: engine.ActionCoup})
	expectCode(t, err, engine.CodePlayerNotFound)
}

func TestApplyInvalidAction(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleMerchant)

	_, err := g.Apply(ps[0].Name, engine.Action{Type: "steal"})
	expectCode(t, err, engine.CodeInvalidAction)

	_, err = g.Apply(ps[1].Name, engine.Action{Type: engine.ActionAbility})
	expectCode(t, err, engine.CodeInvalidAction)
}

func TestApplyWithoutAbilities(t *testing.T) {
	g := engine.NewGame(nil)
	g.Join("Alice", engine.RoleSpy)
	g.Join("Bob", engine.RoleGovernor)
	_, err := g.Apply("Alice", engine.Action{Type: engine.ActionAbility, Target: "Bob"})
	expectCode(t, err, engine.CodeInvalidAction)
}

func TestApplyFailureLeavesNoEvents(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleBaron)
	ps[0].Coins = 2

	// The Baron is compensated before the sanction fails on cost.
	_, err := g.Apply(ps[0].Name, engine.Action{Type: engine.ActionSanction, Target: ps[1].Name})
	expectCode(t, err, engine.CodeNotEnoughCoins)
	if len(g.DrainEvents()) != 0 {
		t.Fatal("failed apply left events queued")
	}

	events, err := g.Apply(ps[0].Name, engine.Action{Type: engine.ActionGather})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sameTypes(events, engine.EventActionTaken, engine.EventTurnStart) {
		t.Errorf("events: got %v", eventTypes(events))
	}
}

func TestApplyOutOfTurnAbility(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleSpy)
	ps[0].Coins = 5

	events, err := g.Apply(ps[1].Name, engine.Action{Type: engine.ActionAbility, Target: ps[0].Name})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sameTypes(events, engine.EventAbilityUsed) {
		t.Fatalf("events: got %v", eventTypes(events))
	}
	data := events[0].Data.(map[string]interface{})
	if data["message"] != "Spy2 peeked and disabled Governor1 (coins: 5)" {
		t.Errorf("message: got %v", data["message"])
	}
	expectTurn(t, g, ps[0].Name)
}

func TestApplyAbilityEventsPrecedeTurnChange(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleBaron, engine.RoleSpy)
	ps[0].Coins = 3

	events, err := g.Apply(ps[0].Name, engine.Action{Type: engine.ActionAbility})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sameTypes(events, engine.EventAbilityUsed, engine.EventTurnStart) {
		t.Fatalf("events: got %v", eventTypes(events))
	}
	if ps[0].Coins != 6 {
		t.Errorf("coins: got %d, want 6", ps[0].Coins)
	}
}

func TestApplyCoupEndsGame(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleSpy)
	ps[0].Coins = 7

	events, err := g.Apply(ps[0].Name, engine.Action{Type: engine.ActionCoup, Target: ps[1].Name})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(events) < 3 {
		t.Fatalf("events: got %v", eventTypes(events))
	}
	if events[0].Type != engine.EventEliminated || events[0].Player != ps[1].Name {
		t.Errorf("first event: got %+v", events[0])
	}
	last := events[len(events)-1]
	if last.Type != engine.EventGameOver || last.Player != ps[0].Name {
		t.Errorf("last event: got %+v", last)
	}
}

func TestApplyMerchantBonusEvent(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleMerchant)
	ps[1].Coins = 3

	events, err := g.Apply(ps[0].Name, engine.Action{Type: engine.ActionGather})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sameTypes(events, engine.EventActionTaken, engine.EventTurnStart, engine.EventAbilityUsed) {
		t.Fatalf("events: got %v", eventTypes(events))
	}
	if events[2].Player != ps[1].Name {
		t.Errorf("bonus event player: got %s", events[2].Player)
	}
	if ps[1].Coins != 4 {
		t.Errorf("merchant coins: got %d, want 4", ps[1].Coins)
	}
}

func TestApplyRoundStartEvent(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleSpy)
	g.Apply(ps[0].Name, engine.Action{Type: engine.ActionGather})

	events, err := g.Apply(ps[1].Name, engine.Action{Type: engine.ActionGather})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sameTypes(events, engine.EventActionTaken, engine.EventRoundStart, engine.EventTurnStart) {
		t.Fatalf("events: got %v", eventTypes(events))
	}
	if g.Round() != 2 {
		t.Errorf("round: got %d, want 2", g.Round())
	}
}

func TestApplyReturnsOnlyItsOwnEvents(t *testing.T) {
	g, ps := newTestGame(t, engine.RoleGovernor, engine.RoleSpy)
	ps[0].Gather()
	if err := ps[1].Tax(); err != nil {
		t.Fatalf("tax: %v", err)
	}

	events, err := g.Apply(ps[0].Name, engine.Action{Type: engine.ActionAbility})
	if err != nil {
		t.Fatalf("undo tax: %v", err)
	}
	if !sameTypes(events, engine.EventAbilityUsed) {
		t.Fatalf("events: got %v", eventTypes(events))
	}

	queued := g.DrainEvents()
	want := []engine.EventType{
		engine.EventActionTaken, engine.EventTurnStart,
		engine.EventActionTaken, engine.EventRoundStart, engine.EventTurnStart,
	}
	if !sameTypes(queued, want...) {
		t.Errorf("direct calls should stay queued: got %v", eventTypes(queued))
	}
}

func TestMerchantBonusWithoutAbilities(t *testing.T) {
	g := engine.NewGame(nil)
	g.Join("Alice", engine.RoleGovernor)
	m, _ := g.Join("Bob", engine.RoleMerchant)
	m.Coins = 3

	events, err := g.Apply("Alice", engine.Action{Type: engine.ActionGather})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !sameTypes(events, engine.EventActionTaken, engine.EventTurnStart, engine.EventAbilityUsed) {
		t.Fatalf("events: got %v", eventTypes(events))
	}
	if m.Coins != 4 {
		t.Errorf("merchant coins: got %d, want 4", m.Coins)
	}
}
