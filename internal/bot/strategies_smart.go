package bot

import (
	botinternal "coinche/internal/bot/internal"

	"coinche/internal/domain"
)

// SmartBot evaluates its hand per candidate trump, raises opponents up to
// the hand's value, doubles contracts it holds the trump honors against,
// and plays point-aware cards.
type SmartBot struct {
	Tuning BotTuning
}

func (b *SmartBot) ChooseBid(game *domain.Game, seat domain.Seat) domain.Bid {
	round := game.Round
	if round == nil {
		return domain.PassBid
	}
	legal := game.LegalBids(seat)
	hand := round.Hands[seat]
	profile := botinternal.BestSuit(hand, b.Tuning.Weights)
	value, strong := botinternal.SuggestedValue(profile.Score, b.Tuning.MaxBid)

	current := round.Auction.Current
	if current == nil {
		if !strong {
			return domain.PassBid
		}
		// Open at the minimum and keep room to raise later.
		bid := domain.Bid{Action: domain.ActionBid, Trump: profile.Trump, Value: domain.Contract80}
		if containsBid(legal, bid) {
			return bid
		}
		return domain.PassBid
	}

	if current.TakingTeam() == seat.Team() {
		// The partner carries the contract; stay out of the way.
		return domain.PassBid
	}

	// Holding the opponents' trump honors is worth a double.
	held := botinternal.EvaluateSuit(hand, current.Trump, b.Tuning.Weights)
	if held.Points >= b.Tuning.DoubleThreshold {
		double := domain.Bid{Action: domain.ActionDouble}
		if containsBid(legal, double) {
			return double
		}
	}

	// Minimal raise over the opponents, never past the hand's value.
	if strong && value > current.Value {
		for _, v := range domain.BidValues {
			if v <= current.Value || v > value {
				continue
			}
			bid := domain.Bid{Action: domain.ActionBid, Trump: profile.Trump, Value: v}
			if containsBid(legal, bid) {
				return bid
			}
			break
		}
	}
	return domain.PassBid
}

func (b *SmartBot) ChooseCard(game *domain.Game, seat domain.Seat) (domain.Card, error) {
	legal := game.LegalPlays(seat)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalCard
	}
	round := game.Round
	trump := round.Contract.Trump
	trick := round.Tricks[len(round.Tricks)-1]

	lead, ok := trick.LeadSuit()
	if !ok {
		// Leading: put the strongest card on the table.
		best := legal[0]
		for _, c := range legal[1:] {
			if domain.Beats(c, best, c.Suit, trump) {
				best = c
			}
		}
		return best, nil
	}

	winning := winningCard(trick)
	if trick.Winner.Team() == seat.Team() {
		// Partner masters the trick; feed it the cheapest card.
		return cheapest(legal, trump), nil
	}

	// Take the trick with the cheapest card that beats it, otherwise
	// throw the cheapest card away.
	var takers []domain.Card
	for _, c := range legal {
		if domain.Beats(c, winning, lead, trump) {
			takers = append(takers, c)
		}
	}
	if len(takers) > 0 {
		return cheapest(takers, trump), nil
	}
	return cheapest(legal, trump), nil
}

func winningCard(t *domain.Trick) domain.Card {
	for _, p := range t.Plays {
		if p.Seat == t.Winner {
			return p.Card
		}
	}
	return domain.Card{}
}

func cheapest(cards []domain.Card, trump domain.Trump) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if domain.CardPoints(c, trump) < domain.CardPoints(best, trump) {
			best = c
		}
	}
	return best
}
