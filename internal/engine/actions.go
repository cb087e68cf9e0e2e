package engine

// The universal actions. Each one validates in a fixed order, mutates the
// player and game, then hands the turn on with exactly one NextTurn call.
// A failed check returns before anything is mutated, except where noted.

// Gather takes one coin from the treasury.
func (p *Player) Gather() error {
	if err := p.CheckTurn(); err != nil {
		return err
	}
	if p.MustCoup {
		return ErrMustPerformCoup
	}
	if p.Sanctioned {
		return ErrSanctioned
	}
	p.Coins += GatherIncome
	p.game.emit(actionEvent(p, ActionGather, "", GatherIncome))
	p.game.NextTurn()
	return nil
}

// Tax takes the role's tax income and records it so a Governor can undo it.
func (p *Player) Tax() error {
	if err := p.CheckTurn(); err != nil {
		return err
	}
	if p.MustCoup {
		return ErrMustPerformCoup
	}
	if p.Sanctioned {
		return ErrSanctioned
	}
	amount := p.Role.TaxAmount()
	p.Coins += amount
	p.game.recordTax(p.Name)
	p.game.emit(actionEvent(p, ActionTax, "", amount))
	p.game.NextTurn()
	return nil
}

// Bribe pays for extra turns. The NextTurn call at the end consumes the
// first of them, so the player keeps the turn with one extra pending.
func (p *Player) Bribe() error {
	if err := p.CheckTurn(); err != nil {
		return err
	}
	if p.MustCoup {
		return ErrMustPerformCoup
	}
	if p.Coins < BribeCost {
		return NotEnoughCoins(BribeCost, p.Coins)
	}
	p.Coins -= BribeCost
	p.ExtraTurns = BribeExtraTurns
	p.UsedBribe = true
	p.game.emit(actionEvent(p, ActionBribe, "", -BribeCost))
	p.game.NextTurn()
	return nil
}

// Arrest takes coins from target. Generals lose nothing but still pay the
// arresting player; Merchants pay two coins to the treasury instead.
func (p *Player) Arrest(target *Player) error {
	if err := p.CheckTurn(); err != nil {
		return err
	}
	if p.MustCoup {
		return ErrMustPerformCoup
	}
	if p.ArrestBlocked {
		return ErrArrestBlocked
	}
	if target.Eliminated {
		return ErrTargetIsEliminated
	}
	if target.Name == p.Name {
		return ErrCannotTargetYourself
	}
	if target.Name == p.game.lastArrested {
		return ErrDuplicateArrest
	}

	gained := 0
	switch target.Role {
	case RoleGeneral:
		if target.Coins <= 0 {
			return ErrTargetNoCoins
		}
		gained = 1
	case RoleMerchant:
		if target.Coins <= 1 {
			return ErrTargetNoCoins
		}
		target.Coins -= 2
	default:
		if target.Coins <= 0 {
			return ErrTargetNoCoins
		}
		target.Coins--
		gained = 1
	}
	p.Coins += gained

	p.game.lastArrested = target.Name
	p.game.emit(actionEvent(p, ActionArrest, target.Name, gained))
	p.game.NextTurn()
	return nil
}

// Sanction blocks target's gather and tax until p's next turn starts.
// A Baron target is compensated before the cost is checked, so the
// compensation stands even when the sanction then fails on cost.
func (p *Player) Sanction(target *Player) error {
	if err := p.CheckTurn(); err != nil {
		return err
	}
	if p.MustCoup {
		return ErrMustPerformCoup
	}
	if target.Eliminated {
		return ErrTargetIsEliminated
	}
	if target.Name == p.Name {
		return ErrCannotTargetYourself
	}
	if target.Sanctioned {
		return ErrAlreadySanctioned
	}
	if target.Role == RoleBaron {
		target.IncreaseCoins(BaronCompensation)
	}
	cost := target.Role.SanctionCost()
	if err := p.DecreaseCoins(cost); err != nil {
		return err
	}
	target.MarkSanctioned(p.Name)
	p.game.emit(actionEvent(p, ActionSanction, target.Name, -cost))
	p.game.NextTurn()
	return nil
}

// Coup eliminates target. The coup stays on record for a General to undo
// until p's next turn begins.
func (p *Player) Coup(target *Player) error {
	if err := p.CheckTurn(); err != nil {
		return err
	}
	if p.Coins < CoupCost {
		return NotEnoughCoins(CoupCost, p.Coins)
	}
	if target.Eliminated {
		return ErrTargetIsAlreadyEliminated
	}
	if target.Name == p.Name {
		return ErrCannotTargetYourself
	}
	p.Coins -= CoupCost
	p.game.eliminate(target)
	p.game.coups = append(p.game.coups, CoupRecord{Attacker: p.Name, Target: target.Name})
	p.game.emit(actionEvent(p, ActionCoup, target.Name, -CoupCost))
	p.game.NextTurn()
	return nil
}

func actionEvent(p *Player, action ActionType, target string, coins int) Event {
	data := map[string]interface{}{
		"action": string(action),
		"coins":  coins,
	}
	if target != "" {
		data["target"] = target
	}
	return Event{Type: EventActionTaken, Player: p.Name, Data: data}
}
