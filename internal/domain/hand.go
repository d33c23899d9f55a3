package domain

// Hand holds the cards a player has not yet played.
type Hand []Card

// Has reports whether the hand contains the card.
func (h Hand) Has(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}
	return false
}

// HasSuit reports whether the hand contains any card of the suit.
func (h Hand) HasSuit(s Suit) bool {
	for _, c := range h {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// Remove returns a copy of the hand without the given card. The second
// return value is false when the card was not held.
func (h Hand) Remove(card Card) (Hand, bool) {
	for i, c := range h {
		if c == card {
			out := make(Hand, 0, len(h)-1)
			out = append(out, h[:i]...)
			out = append(out, h[i+1:]...)
			return out, true
		}
	}
	return h, false
}

// hasTrumpAbove reports whether the hand holds a trump stronger than the
// given trump strength.
func (h Hand) hasTrumpAbove(trump Trump, s int) bool {
	for _, c := range h {
		if trump.Is(c.Suit) && TrumpStrength(c.Rank) > s {
			return true
		}
	}
	return false
}

// canPlay validates a single card against the follow-suit, must-trump and
// must-overtrump rules. It returns nil when the play is legal.
//
// The rules, in order:
//   - the card must be held;
//   - the leader may play anything;
//   - a player holding the lead suit must follow it;
//   - a player unable to follow must trump if holding any, unless their
//     partner is currently taking the trick;
//   - any trump played must beat the strongest trump already in the trick
//     when the hand holds one that can.
func canPlay(seat Seat, card Card, hand Hand, trick *Trick, trump Trump) error {
	if !hand.Has(card) {
		return ErrCardNotHeld
	}

	lead, ok := trick.LeadSuit()
	if !ok {
		return nil
	}

	if card.Suit != lead {
		if hand.HasSuit(lead) {
			return ErrMustFollowSuit
		}
		if trump != NoTrump && !trump.Is(card.Suit) {
			partnerWinning := trick.Winner.Team() == seat.Team()
			if !partnerWinning && hand.HasSuit(Suit(trump)) {
				return ErrMustPlayTrump
			}
		}
	}

	if trump.Is(card.Suit) {
		highest := trick.HighestTrumpStrength(trump)
		if TrumpStrength(card.Rank) < highest && hand.hasTrumpAbove(trump, highest) {
			return ErrMustOvertrump
		}
	}

	return nil
}

// LegalPlays returns every card the seat may legally play into the trick.
// The set is derived fresh from the current hand and trick on every call.
func LegalPlays(seat Seat, hand Hand, trick *Trick, trump Trump) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if canPlay(seat, c, hand, trick, trump) == nil {
			out = append(out, c)
		}
	}
	return out
}
