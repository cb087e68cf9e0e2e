package engine

// Player holds one seat's state. A player is bound to the Game it was
// created for and only acts through it.
type Player struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Coins int    `json:"coins"`

	Eliminated bool `json:"eliminated"`
	MustCoup   bool `json:"must_coup"` // coins >= ForcedCoupCoins at turn start

	Sanctioned   bool   `json:"sanctioned"`
	SanctionedBy string `json:"sanctioned_by,omitempty"`

	// Set by the Spy; counts down when the player's turn ends.
	ArrestBlocked    bool `json:"arrest_blocked"`
	ArrestBlockTurns int  `json:"arrest_block_turns"`

	ExtraTurns int  `json:"extra_turns"`
	UsedBribe  bool `json:"used_bribe"` // reset when the player's turn starts

	// Per-round gate for the role ability, reset at every round boundary.
	AbilityUsed bool `json:"ability_used"`

	game *Game
}

// NewPlayer creates a player with no coins bound to g. The player joins
// the table once g.AddPlayer accepts it.
func NewPlayer(g *Game, name string, role Role) *Player {
	return &Player{
		Name: name,
		Role: role,
		game: g,
	}
}

// Game returns the match the player is bound to.
func (p *Player) Game() *Game {
	return p.game
}

// CheckTurn fails with ErrNotYourTurn unless p is the current player.
func (p *Player) CheckTurn() error {
	if p.game == nil {
		return ErrGameNotStarted
	}
	name, err := p.game.Turn()
	if err != nil {
		return err
	}
	if name != p.Name {
		return ErrNotYourTurn
	}
	return nil
}

func (p *Player) IncreaseCoins(amount int) {
	p.Coins += amount
}

// DecreaseCoins removes amount coins, failing without change when the
// player cannot afford it.
func (p *Player) DecreaseCoins(amount int) error {
	if p.Coins < amount {
		return NotEnoughCoins(amount, p.Coins)
	}
	p.Coins -= amount
	return nil
}

// MarkEliminated takes the player out of the turn order. Pending extra
// turns are forfeited.
func (p *Player) MarkEliminated() {
	p.Eliminated = true
	p.ExtraTurns = 0
}

// Revive returns an eliminated player to the table.
func (p *Player) Revive() error {
	if !p.Eliminated {
		return ErrTargetNotEliminated
	}
	p.Eliminated = false
	return nil
}

func (p *Player) MarkSanctioned(by string) {
	p.Sanctioned = true
	p.SanctionedBy = by
}

func (p *Player) ClearSanction() {
	p.Sanctioned = false
	p.SanctionedBy = ""
}

// BlockArrest stops the player from arresting until turns of their own
// turns have ended.
func (p *Player) BlockArrest(turns int) {
	p.ArrestBlocked = true
	p.ArrestBlockTurns = turns
}

func (p *Player) tickArrestBlock() {
	if !p.ArrestBlocked {
		return
	}
	p.ArrestBlockTurns--
	if p.ArrestBlockTurns <= 0 {
		p.ArrestBlocked = false
		p.ArrestBlockTurns = 0
	}
}

// StartNewTurn runs the start-of-turn bookkeeping: the forced coup
// threshold, lifting sanctions this player imposed, the bribe flag and
// finally the Merchant bonus.
func (p *Player) StartNewTurn() {
	p.MustCoup = p.Coins >= ForcedCoupCoins

	for _, other := range p.game.players {
		if other.Sanctioned && other.SanctionedBy == p.Name {
			other.ClearSanction()
		}
	}
	p.UsedBribe = false

	if p.MerchantBonus() {
		p.game.emit(Event{Type: EventAbilityUsed, Player: p.Name, Data: map[string]interface{}{
			"ability":     "merchant",
			"bonus_coins": MerchantBonus,
		}})
	}
}

// MerchantBonus grants a Merchant holding at least MerchantThreshold coins
// its bonus coin and reports whether it applied.
func (p *Player) MerchantBonus() bool {
	if p.Role != RoleMerchant || p.Coins < MerchantThreshold {
		return false
	}
	p.IncreaseCoins(MerchantBonus)
	return true
}
