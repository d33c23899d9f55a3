package internal

import (
	"coinche/internal/domain"
)

// SuitProfile is the bidding-strength breakdown of one candidate trump suit.
type SuitProfile struct {
	Trump  domain.Trump
	Length int
	// Points is the trump-point total of the held cards under this trump.
	Points int
	// SideAces counts aces outside the candidate suit.
	SideAces int
	Score    int
}

// Weights tunes the hand evaluator. Scores are roughly calibrated to
// contract values: a hand scoring 80 should usually make an 80 contract.
type Weights struct {
	TrumpCardWeight int // per trump point held
	LengthBonus     int // per trump beyond three
	SideAceBonus    int
	BeloteBonus     int // holding both trump king and queen
}

// EvaluateSuit profiles the hand under one candidate trump.
func EvaluateSuit(hand domain.Hand, trump domain.Trump, w Weights) SuitProfile {
	p := SuitProfile{Trump: trump}
	hasKing, hasQueen := false, false
	for _, c := range hand {
		if trump.Is(c.Suit) {
			p.Length++
			p.Points += domain.CardPoints(c, trump)
			hasKing = hasKing || c.Rank == domain.King
			hasQueen = hasQueen || c.Rank == domain.Queen
		} else if c.Rank == domain.Ace {
			p.SideAces++
		}
	}

	p.Score = p.Points * w.TrumpCardWeight
	if p.Length > 3 {
		p.Score += (p.Length - 3) * w.LengthBonus
	}
	p.Score += p.SideAces * w.SideAceBonus
	if hasKing && hasQueen {
		p.Score += w.BeloteBonus
	}
	return p
}

// BestSuit picks the strongest candidate trump for the hand. No-trump is
// not considered; bots only bid suits they can defend.
func BestSuit(hand domain.Hand, w Weights) SuitProfile {
	best := SuitProfile{Score: -1}
	for _, trump := range domain.Trumps {
		if trump == domain.NoTrump {
			continue
		}
		if p := EvaluateSuit(hand, trump, w); p.Score > best.Score {
			best = p
		}
	}
	return best
}

// SuggestedValue maps a hand score onto the bidding scale, capped at the
// given ceiling. Returns false when the score supports no contract at all.
func SuggestedValue(score int, ceiling domain.BidValue) (domain.BidValue, bool) {
	var suggested domain.BidValue
	for _, v := range domain.BidValues {
		if v == domain.Capot || v > ceiling {
			break
		}
		if score >= int(v) {
			suggested = v
		}
	}
	return suggested, suggested != 0
}
