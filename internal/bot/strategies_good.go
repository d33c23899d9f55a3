package bot

import (
	"errors"

	botinternal "coinche/internal/bot/internal"

	"coinche/internal/domain"
)

// ErrNoLegalCard means the strategy was asked to play off turn or in the
// wrong phase.
var ErrNoLegalCard = errors.New("no legal card to play")

// GoodBot is the baseline strategy: it opens at the minimum on a hand
// strong enough to carry a contract, never raises, and plays the first
// legal card.
type GoodBot struct{}

func (b *GoodBot) ChooseBid(game *domain.Game, seat domain.Seat) domain.Bid {
	round := game.Round
	if round == nil || round.Auction.Current != nil {
		return domain.PassBid
	}
	profile := botinternal.BestSuit(round.Hands[seat], DefaultTuning.Weights)
	if profile.Score < int(domain.Contract80) {
		return domain.PassBid
	}
	bid := domain.Bid{Action: domain.ActionBid, Trump: profile.Trump, Value: domain.Contract80}
	if !containsBid(game.LegalBids(seat), bid) {
		return domain.PassBid
	}
	return bid
}

func (b *GoodBot) ChooseCard(game *domain.Game, seat domain.Seat) (domain.Card, error) {
	legal := game.LegalPlays(seat)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCard
	}
	return legal[0], nil
}

func containsBid(legal []domain.Bid, bid domain.Bid) bool {
	for _, b := range legal {
		if b == bid {
			return true
		}
	}
	return false
}
