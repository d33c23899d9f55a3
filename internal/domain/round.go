package domain

// TricksPerRound is the number of tricks in a full round.
const TricksPerRound = 8

// RoundPhase is the lifecycle stage of a round.
type RoundPhase int8

const (
	// RoundBidding means the auction is running.
	RoundBidding RoundPhase = iota
	// RoundPlaying means a contract is fixed and tricks are being played.
	RoundPlaying
	// RoundScored means all eight tricks were played and the result is
	// available.
	RoundScored
	// RoundVoid means all four players passed without a bid; the round
	// carries no score and must be redealt.
	RoundVoid
)

// Round is one full deal-bid-play-score cycle. It owns the four hands, the
// auction, the contract once fixed, and the trick sequence. All state is
// exported so a hosting layer can serialize snapshots for transport.
type Round struct {
	Dealer   Seat          `json:"dealer"`
	Phase    RoundPhase    `json:"phase"`
	Hands    [NumSeats]Hand `json:"hands"`
	Auction  *Auction      `json:"auction"`
	Contract *Contract     `json:"contract,omitempty"`
	Tricks   []*Trick      `json:"tricks,omitempty"`
	Points   [2]int        `json:"points"` // card points per team, incl. last-trick bonus
	Rules    Rules         `json:"rules"`

	// BeloteSeat is the seat dealt both the trump king and queen, if any.
	BeloteSeat *Seat `json:"belote_seat,omitempty"`
	// BelotePlayed counts how many of that pair have been played.
	BelotePlayed int `json:"belote_played"`

	Result *RoundResult `json:"result,omitempty"`
}

// NewRound deals a shuffled 32-card deck and opens the auction with the
// player left of the dealer. The caller supplies the shuffle; the engine
// only validates that the deck holds the 32 distinct cards.
func NewRound(dealer Seat, deck []Card) (*Round, error) {
	return NewRoundWithRules(dealer, deck, DefaultRules())
}

// NewRoundWithRules is NewRound under explicit table conventions.
func NewRoundWithRules(dealer Seat, deck []Card, rules Rules) (*Round, error) {
	if len(deck) != DeckSize {
		return nil, ErrBadDeal
	}
	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		if seen[c] {
			return nil, ErrBadDeal
		}
		seen[c] = true
	}

	r := &Round{
		Dealer:  dealer,
		Phase:   RoundBidding,
		Auction: NewAuction(dealer.Next()),
		Rules:   rules,
	}

	// Deal 3-2-3 starting left of the dealer.
	idx := 0
	for _, n := range []int{3, 2, 3} {
		for i := 0; i < NumSeats; i++ {
			seat := dealer.Next().nextN(i)
			r.Hands[seat] = append(r.Hands[seat], deck[idx:idx+n]...)
			idx += n
		}
	}

	return r, nil
}

func (s Seat) nextN(n int) Seat {
	return (s + Seat(n)) % NumSeats
}

// Terminal reports whether the round is over, either scored or void.
func (r *Round) Terminal() bool {
	return r.Phase == RoundScored || r.Phase == RoundVoid
}

// Turn returns the seat expected to act next. The second return value is
// false once the round is terminal.
func (r *Round) Turn() (Seat, bool) {
	switch r.Phase {
	case RoundBidding:
		return r.Auction.Turn, true
	case RoundPlaying:
		return r.currentTrick().NextSeat(), true
	default:
		return 0, false
	}
}

// SubmitBid applies one auction move. Closing the auction fixes the
// contract and starts play; voiding it ends the round with no score.
func (r *Round) SubmitBid(seat Seat, bid Bid) error {
	switch r.Phase {
	case RoundScored, RoundVoid:
		return ErrRoundOver
	case RoundPlaying:
		return ErrNotBidding
	}

	if err := r.Auction.Submit(seat, bid); err != nil {
		return err
	}

	switch r.Auction.State {
	case AuctionClosed:
		r.Contract = r.Auction.Current
		r.Phase = RoundPlaying
		r.Tricks = []*Trick{NewTrick(r.Dealer.Next())}
		r.findBeloteHolder()
	case AuctionVoid:
		r.Phase = RoundVoid
	}
	return nil
}

// LegalBids returns the auction moves open to the seat, empty outside the
// bidding phase or off turn.
func (r *Round) LegalBids(seat Seat) []Bid {
	if r.Phase != RoundBidding {
		return nil
	}
	return r.Auction.LegalBids(seat)
}

// SubmitPlay plays one card into the current trick. A rejected play leaves
// the round untouched. Completing the fourth play resolves the trick;
// completing the eighth trick scores the round.
func (r *Round) SubmitPlay(seat Seat, card Card) error {
	switch r.Phase {
	case RoundScored, RoundVoid:
		return ErrRoundOver
	case RoundBidding:
		return ErrNotPlaying
	}

	trick := r.currentTrick()
	if seat != trick.NextSeat() {
		return ErrNotYourTurn
	}
	if err := canPlay(seat, card, r.Hands[seat], trick, r.Contract.Trump); err != nil {
		return err
	}

	hand, _ := r.Hands[seat].Remove(card)
	r.Hands[seat] = hand
	trick.play(seat, card, r.Contract.Trump)
	r.trackBelote(seat, card)

	if !trick.Complete() {
		return nil
	}

	winner := trick.Winner
	r.Points[winner.Team()] += trick.Points(r.Contract.Trump)
	if len(r.Tricks) < TricksPerRound {
		r.Tricks = append(r.Tricks, NewTrick(winner))
		return nil
	}

	r.Points[winner.Team()] += LastTrickBonus
	res := scoreRound(*r.Contract, r.Points, r.beloteTeam(), r.takingWonAll(), r.Rules)
	r.Result = &res
	r.Phase = RoundScored
	return nil
}

// LegalPlays returns the cards the seat may play right now, empty outside
// the play phase or off turn. The set is recomputed fresh on every call.
func (r *Round) LegalPlays(seat Seat) []Card {
	if r.Phase != RoundPlaying {
		return nil
	}
	trick := r.currentTrick()
	if seat != trick.NextSeat() {
		return nil
	}
	return LegalPlays(seat, r.Hands[seat], trick, r.Contract.Trump)
}

// Outcome returns the round result once the round is scored, nil before
// that and for void rounds.
func (r *Round) Outcome() *RoundResult {
	return r.Result
}

func (r *Round) currentTrick() *Trick {
	return r.Tricks[len(r.Tricks)-1]
}

// findBeloteHolder records which seat, if any, was dealt both the trump
// king and queen. No belote exists under a no-trump contract.
func (r *Round) findBeloteHolder() {
	if r.Contract.Trump == NoTrump {
		return
	}
	suit := Suit(r.Contract.Trump)
	for seat := Seat(0); seat < NumSeats; seat++ {
		if r.Hands[seat].Has(Card{Suit: suit, Rank: King}) && r.Hands[seat].Has(Card{Suit: suit, Rank: Queen}) {
			s := seat
			r.BeloteSeat = &s
			return
		}
	}
}

func (r *Round) trackBelote(seat Seat, card Card) {
	if r.BeloteSeat == nil || *r.BeloteSeat != seat {
		return
	}
	if r.Contract.Trump.Is(card.Suit) && (card.Rank == King || card.Rank == Queen) {
		r.BelotePlayed++
	}
}

func (r *Round) beloteTeam() *Team {
	if r.BeloteSeat == nil || r.BelotePlayed < 2 {
		return nil
	}
	t := r.BeloteSeat.Team()
	return &t
}

func (r *Round) takingWonAll() bool {
	taking := r.Contract.TakingTeam()
	for _, t := range r.Tricks {
		if t.Winner.Team() != taking {
			return false
		}
	}
	return true
}
