package bot

import (
	botinternal "coinche/internal/bot/internal"

	"coinche/internal/domain"
)

// BotTuning balances bidding aggression against contract safety.
type BotTuning struct {
	Weights botinternal.Weights
	// MaxBid caps how high a bot will push the auction.
	MaxBid domain.BidValue
	// DoubleThreshold is the trump-point total held in the opponents'
	// suit above which a contract gets doubled.
	DoubleThreshold int
}

// DefaultTuning is calibrated so a hand holding the trump jack, nine and
// ace with one side ace values out around a 100 contract.
var DefaultTuning = BotTuning{
	Weights: botinternal.Weights{
		TrumpCardWeight: 2,
		LengthBonus:     10,
		SideAceBonus:    15,
		BeloteBonus:     20,
	},
	MaxBid:          domain.Contract160,
	DoubleThreshold: 34, // trump jack plus nine
}
