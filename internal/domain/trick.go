package domain

// Play is one card laid into a trick by a seat.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// Trick is one round of four plays, one card per player. The first card
// fixes the suit the others must follow; once four cards are down the trick
// is frozen and has exactly one winner.
type Trick struct {
	Leader Seat   `json:"leader"`
	Plays  []Play `json:"plays"`
	// Winner is the seat currently taking the trick. Only meaningful once
	// at least one card has been played.
	Winner Seat `json:"winner"`
}

// NewTrick starts an empty trick led by the given seat.
func NewTrick(leader Seat) *Trick {
	return &Trick{Leader: leader, Winner: leader}
}

// LeadSuit returns the suit of the first card played, if any.
func (t *Trick) LeadSuit() (Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// Complete reports whether all four cards have been played.
func (t *Trick) Complete() bool {
	return len(t.Plays) == NumSeats
}

// NextSeat returns the seat expected to play next.
func (t *Trick) NextSeat() Seat {
	return (t.Leader + Seat(len(t.Plays))) % NumSeats
}

// play appends a card and updates the running winner.
func (t *Trick) play(seat Seat, card Card, trump Trump) {
	if len(t.Plays) == 0 {
		t.Plays = append(t.Plays, Play{Seat: seat, Card: card})
		t.Winner = seat
		return
	}
	lead := t.Plays[0].Card.Suit
	if Beats(card, t.winningCard(), lead, trump) {
		t.Winner = seat
	}
	t.Plays = append(t.Plays, Play{Seat: seat, Card: card})
}

func (t *Trick) winningCard() Card {
	for _, p := range t.Plays {
		if p.Seat == t.Winner {
			return p.Card
		}
	}
	return Card{}
}

// Points sums the card points in the trick under the contract trump.
func (t *Trick) Points(trump Trump) int {
	total := 0
	for _, p := range t.Plays {
		total += CardPoints(p.Card, trump)
	}
	return total
}

// HighestTrumpStrength returns the strength of the strongest trump played
// into the trick so far, or -1 when the trick holds no trump.
func (t *Trick) HighestTrumpStrength(trump Trump) int {
	highest := -1
	for _, p := range t.Plays {
		if trump.Is(p.Card.Suit) {
			if s := TrumpStrength(p.Card.Rank); s > highest {
				highest = s
			}
		}
	}
	return highest
}
