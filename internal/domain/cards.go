package domain

// Suit represents one of the four card suits.
type Suit int8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the single-letter suit code used on the wire.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Rank represents a card rank in the 32-card deck.
type Rank int8

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the display name of the rank.
func (r Rank) String() string {
	switch r {
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is a single playing card. Cards are immutable values; the full deck
// holds each (suit, rank) combination exactly once.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// DeckSize is the number of cards in a coinche deck.
const DeckSize = 32

// NewDeck returns the ordered 32-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Clubs; s <= Spades; s++ {
		for r := Seven; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Trump identifies the trump suit of a contract, or NoTrump for a contract
// played without one.
type Trump int8

const (
	TrumpClubs    Trump = Trump(Clubs)
	TrumpDiamonds Trump = Trump(Diamonds)
	TrumpHearts   Trump = Trump(Hearts)
	TrumpSpades   Trump = Trump(Spades)
	NoTrump       Trump = 4
)

// Trumps lists every trump option a contract may name.
var Trumps = []Trump{TrumpClubs, TrumpDiamonds, TrumpHearts, TrumpSpades, NoTrump}

// Is reports whether the given suit is the trump suit.
func (t Trump) Is(s Suit) bool {
	return t != NoTrump && Suit(t) == s
}

func (t Trump) String() string {
	if t == NoTrump {
		return "NT"
	}
	return Suit(t).String()
}

// CardPoints returns the point value of a card under the contract's trump.
//
// Plain suits: A=11, 10=10, K=4, Q=3, J=2, rest 0.
// Trump suit: J=20, 9=14, then the plain values.
// No-trump contracts: as plain but A=19, so the deck still totals 162 with
// the last-trick bonus.
func CardPoints(c Card, trump Trump) int {
	switch {
	case trump.Is(c.Suit):
		return trumpPoints(c.Rank)
	case trump == NoTrump:
		return noTrumpPoints(c.Rank)
	default:
		return plainPoints(c.Rank)
	}
}

func plainPoints(r Rank) int {
	switch r {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

func trumpPoints(r Rank) int {
	switch r {
	case Jack:
		return 20
	case Nine:
		return 14
	default:
		return plainPoints(r)
	}
}

func noTrumpPoints(r Rank) int {
	if r == Ace {
		return 19
	}
	return plainPoints(r)
}

// TrumpStrength orders ranks within the trump suit, low to high:
// 7, 8, Q, K, 10, A, 9, J.
func TrumpStrength(r Rank) int {
	switch r {
	case Seven:
		return 0
	case Eight:
		return 1
	case Queen:
		return 2
	case King:
		return 3
	case Ten:
		return 4
	case Ace:
		return 5
	case Nine:
		return 6
	case Jack:
		return 7
	default:
		return -1
	}
}

// PlainStrength orders ranks outside the trump suit, low to high:
// 7, 8, 9, J, Q, K, 10, A.
func PlainStrength(r Rank) int {
	switch r {
	case Seven:
		return 0
	case Eight:
		return 1
	case Nine:
		return 2
	case Jack:
		return 3
	case Queen:
		return 4
	case King:
		return 5
	case Ten:
		return 6
	case Ace:
		return 7
	default:
		return -1
	}
}

// strength ranks a card within a trick. Trumps always outrank plain cards,
// and a card of neither the trump nor the lead suit can never win.
func strength(c Card, lead Suit, trump Trump) int {
	if trump.Is(c.Suit) {
		return 8 + TrumpStrength(c.Rank)
	}
	if c.Suit == lead {
		return PlainStrength(c.Rank)
	}
	return -1
}

// Beats reports whether card a wins over card b given the lead suit and the
// contract trump. b is assumed to have been played first.
func Beats(a, b Card, lead Suit, trump Trump) bool {
	return strength(a, lead, trump) > strength(b, lead, trump)
}
