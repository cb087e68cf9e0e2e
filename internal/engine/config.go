package engine

// Table limits and action prices.
const (
	MinPlayers = 2
	MaxPlayers = 6

	GatherIncome    = 1
	BaseTaxIncome   = 2
	GovernorTax     = 3
	BribeCost       = 4
	BribeExtraTurns = 2
	CoupCost        = 7
	ForcedCoupCoins = 10 // coins at turn start that force a coup

	SanctionCost      = 3
	JudgeSanctionCost = 4 // sanctioning a Judge costs more
	BaronCompensation = 1

	InvestCost   = 3
	InvestReturn = 6

	UndoCoupCost      = 5
	ArrestBlockTurns  = 1
	MerchantThreshold = 3 // coins needed at turn start for the Merchant bonus
	MerchantBonus     = 1
)
