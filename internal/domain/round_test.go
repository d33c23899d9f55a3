package domain

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// deckForHands builds a deck that the 3-2-3 deal will distribute back into
// exactly the given hands.
func deckForHands(dealer Seat, hands [NumSeats]Hand) []Card {
	deck := make([]Card, 0, DeckSize)
	var taken [NumSeats]int
	for _, n := range []int{3, 2, 3} {
		for i := 0; i < NumSeats; i++ {
			seat := dealer.Next().nextN(i)
			deck = append(deck, hands[seat][taken[seat]:taken[seat]+n]...)
			taken[seat] += n
		}
	}
	return deck
}

// suitHands gives each seat a full suit: hearts, spades, diamonds, clubs.
func suitHands() [NumSeats]Hand {
	suits := []Suit{Hearts, Spades, Diamonds, Clubs}
	var hands [NumSeats]Hand
	for seat, s := range suits {
		for r := Seven; r <= Ace; r++ {
			hands[seat] = append(hands[seat], Card{Suit: s, Rank: r})
		}
	}
	return hands
}

func TestNewRoundValidatesDeck(t *testing.T) {
	if _, err := NewRound(0, NewDeck()[:31]); !errors.Is(err, ErrBadDeal) {
		t.Fatalf("short deck: %v", err)
	}
	deck := NewDeck()
	deck[5] = deck[6] // duplicate
	if _, err := NewRound(0, deck); !errors.Is(err, ErrBadDeal) {
		t.Fatalf("duplicate deck: %v", err)
	}
}

func TestDealPartitionsDeck(t *testing.T) {
	deck := NewDeck()
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	r, err := NewRound(2, deck)
	if err != nil {
		t.Fatalf("new round: %v", err)
	}

	seen := make(map[Card]Seat)
	for seat := Seat(0); seat < NumSeats; seat++ {
		if len(r.Hands[seat]) != DeckSize/NumSeats {
			t.Fatalf("seat %d hand size = %d", seat, len(r.Hands[seat]))
		}
		for _, c := range r.Hands[seat] {
			if prev, dup := seen[c]; dup {
				t.Fatalf("card %v dealt to both seat %d and seat %d", c, prev, seat)
			}
			seen[c] = seat
		}
	}
	if len(seen) != DeckSize {
		t.Fatalf("hands cover %d cards, want %d", len(seen), DeckSize)
	}
}

func TestRoundVoidOnAllPass(t *testing.T) {
	r, err := NewRound(0, NewDeck())
	if err != nil {
		t.Fatal(err)
	}
	seat := Seat(1) // left of dealer speaks first
	for i := 0; i < 4; i++ {
		if err := r.SubmitBid(seat, PassBid); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		seat = seat.Next()
	}
	if r.Phase != RoundVoid {
		t.Fatalf("phase = %v, want void", r.Phase)
	}
	if r.Outcome() != nil {
		t.Fatal("void round must have no result")
	}
	if err := r.SubmitBid(seat, PassBid); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("bid after void: %v", err)
	}
}

func TestRoundPhaseGuards(t *testing.T) {
	r, err := NewRound(3, deckForHands(3, suitHands()))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SubmitPlay(0, Card{Hearts, Seven}); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("play during bidding: %v", err)
	}
	if err := r.SubmitBid(0, Bid{Action: ActionBid, Trump: TrumpHearts, Value: Contract80}); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []Seat{1, 2, 3} {
		if err := r.SubmitBid(seat, PassBid); err != nil {
			t.Fatal(err)
		}
	}
	if r.Phase != RoundPlaying {
		t.Fatalf("phase = %v, want playing", r.Phase)
	}
	if err := r.SubmitBid(0, PassBid); !errors.Is(err, ErrNotBidding) {
		t.Fatalf("bid during play: %v", err)
	}
}

// playOut runs a full round where seat 0 holds all trumps and wins every
// trick; everyone else just discards in hand order.
func playOut(t *testing.T, r *Round) {
	t.Helper()
	for r.Phase == RoundPlaying {
		seat, ok := r.Turn()
		if !ok {
			t.Fatal("no turn in playing phase")
		}
		if err := r.SubmitPlay(seat, r.Hands[seat][0]); err != nil {
			t.Fatalf("seat %d play: %v", seat, err)
		}
	}
}

func TestRoundFullPlayConservesPoints(t *testing.T) {
	r, err := NewRound(3, deckForHands(3, suitHands()))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SubmitBid(0, Bid{Action: ActionBid, Trump: TrumpHearts, Value: Contract80}); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []Seat{1, 2, 3} {
		if err := r.SubmitBid(seat, PassBid); err != nil {
			t.Fatal(err)
		}
	}

	playOut(t, r)

	if r.Phase != RoundScored {
		t.Fatalf("phase = %v, want scored", r.Phase)
	}
	if got := r.Points[0] + r.Points[1]; got != TotalPoints {
		t.Fatalf("total card points = %d, want %d", got, TotalPoints)
	}
	if r.Points[0] != TotalPoints || r.Points[1] != 0 {
		t.Fatalf("points = %v", r.Points)
	}

	res := r.Outcome()
	if res == nil || res.Outcome != OutcomeSuccess {
		t.Fatalf("result = %+v", res)
	}
	// Seat 0 held and played the trump king and queen.
	if res.BeloteTeam == nil || *res.BeloteTeam != 0 {
		t.Fatalf("belote team = %v, want team 0", res.BeloteTeam)
	}
	if res.Scores[0] != TotalPoints+20 || res.Scores[1] != 0 {
		t.Fatalf("scores = %v", res.Scores)
	}

	// Terminal rounds reject further plays.
	if err := r.SubmitPlay(0, Card{Hearts, Seven}); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("play after scoring: %v", err)
	}
}

func TestRoundCapotSuccess(t *testing.T) {
	r, err := NewRound(3, deckForHands(3, suitHands()))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SubmitBid(0, Bid{Action: ActionBid, Trump: TrumpHearts, Value: Capot}); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []Seat{1, 2, 3} {
		if err := r.SubmitBid(seat, PassBid); err != nil {
			t.Fatal(err)
		}
	}

	playOut(t, r)

	res := r.Outcome()
	if res == nil || res.Outcome != OutcomeSuccessCapot {
		t.Fatalf("result = %+v", res)
	}
	if res.Scores[0] != 250+20 || res.Scores[1] != 0 {
		t.Fatalf("scores = %v", res.Scores)
	}
}

// Scripted first trick exercising the play legality rules in sequence,
// with the same deal as the reference auction-and-play walkthrough.
func TestRoundScriptedTrick(t *testing.T) {
	hands := [NumSeats]Hand{
		{{Hearts, Eight}, {Hearts, Ten}, {Hearts, Ace}, {Hearts, Nine}, {Clubs, Seven}, {Clubs, Eight}, {Clubs, Nine}, {Clubs, Jack}},
		{{Clubs, Queen}, {Clubs, King}, {Clubs, Ten}, {Clubs, Ace}, {Spades, Seven}, {Spades, Eight}, {Spades, Nine}, {Spades, Jack}},
		{{Diamonds, Seven}, {Diamonds, Eight}, {Diamonds, Nine}, {Diamonds, Jack}, {Spades, Queen}, {Spades, King}, {Hearts, Queen}, {Hearts, King}},
		{{Diamonds, Queen}, {Diamonds, King}, {Diamonds, Ten}, {Diamonds, Ace}, {Spades, Ten}, {Spades, Ace}, {Hearts, Seven}, {Hearts, Jack}},
	}
	r, err := NewRound(3, deckForHands(3, hands))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SubmitBid(0, Bid{Action: ActionBid, Trump: TrumpHearts, Value: Contract80}); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []Seat{1, 2, 3} {
		if err := r.SubmitBid(seat, PassBid); err != nil {
			t.Fatal(err)
		}
	}

	// Seat 2 was dealt both trump king and queen.
	if r.BeloteSeat == nil || *r.BeloteSeat != 2 {
		t.Fatalf("belote seat = %v, want 2", r.BeloteSeat)
	}

	steps := []struct {
		seat Seat
		card Card
		want error
	}{
		{1, Card{Clubs, Ten}, ErrNotYourTurn},
		{0, Card{Clubs, Seven}, nil},
		{1, Card{Hearts, Seven}, ErrCardNotHeld},
		{1, Card{Spades, Seven}, ErrMustFollowSuit},
		{1, Card{Clubs, Queen}, nil},
		{2, Card{Diamonds, Seven}, ErrMustPlayTrump},
		{2, Card{Hearts, Queen}, nil},
		{3, Card{Hearts, Seven}, ErrMustOvertrump},
		{3, Card{Hearts, Jack}, nil},
	}
	for i, step := range steps {
		before := len(r.Hands[step.seat])
		err := r.SubmitPlay(step.seat, step.card)
		if !errors.Is(err, step.want) {
			t.Fatalf("step %d: seat %d played %v: got %v, want %v", i, step.seat, step.card, err, step.want)
		}
		if err != nil && len(r.Hands[step.seat]) != before {
			t.Fatalf("step %d: failed play mutated the hand", i)
		}
	}

	if len(r.Tricks) != 2 {
		t.Fatalf("tricks = %d, want 2", len(r.Tricks))
	}
	first := r.Tricks[0]
	if !first.Complete() || first.Winner != 3 {
		t.Fatalf("first trick winner = %d, want 3", first.Winner)
	}
	// C7=0, CQ=3, HQ=3, HJ=20.
	if r.Points[1] != 26 {
		t.Fatalf("team 1 points = %d, want 26", r.Points[1])
	}
	if r.Tricks[1].Leader != 3 {
		t.Fatalf("next leader = %d, want 3", r.Tricks[1].Leader)
	}
}

// Encoding a round state and decoding it back must preserve the legal
// move sets exactly.
func TestRoundSnapshotRoundTrip(t *testing.T) {
	hands := suitHands()
	r, err := NewRound(3, deckForHands(3, hands))
	if err != nil {
		t.Fatal(err)
	}

	// Mid-auction snapshot.
	if err := r.SubmitBid(0, Bid{Action: ActionBid, Trump: TrumpHearts, Value: Contract90}); err != nil {
		t.Fatal(err)
	}
	checkRoundTrip := func(r *Round) {
		t.Helper()
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded Round
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		for seat := Seat(0); seat < NumSeats; seat++ {
			if !reflect.DeepEqual(r.LegalBids(seat), decoded.LegalBids(seat)) {
				t.Fatalf("seat %d legal bids differ after round-trip", seat)
			}
			if !sameCardSet(r.LegalPlays(seat), decoded.LegalPlays(seat)) {
				t.Fatalf("seat %d legal plays differ after round-trip", seat)
			}
		}
	}
	checkRoundTrip(r)

	for _, seat := range []Seat{1, 2, 3} {
		if err := r.SubmitBid(seat, PassBid); err != nil {
			t.Fatal(err)
		}
	}
	// Mid-trick snapshot.
	if err := r.SubmitPlay(0, r.Hands[0][0]); err != nil {
		t.Fatal(err)
	}
	if err := r.SubmitPlay(1, r.Hands[1][0]); err != nil {
		t.Fatal(err)
	}
	checkRoundTrip(r)
}

func TestScoreRound(t *testing.T) {
	team0 := Team(0)
	tests := []struct {
		name         string
		contract     Contract
		points       [2]int
		belote       *Team
		takingWonAll bool
		rules        Rules
		wantOutcome  ContractOutcome
		wantScores   [2]int
	}{
		{
			name:        "PlainSuccess",
			contract:    Contract{Bidder: 0, Trump: TrumpHearts, Value: Contract80, Multiplier: 1},
			points:      [2]int{85, 77},
			rules:       DefaultRules(),
			wantOutcome: OutcomeSuccess,
			wantScores:  [2]int{85, 77},
		},
		{
			name:        "FailureGivesDefendersFullRound",
			contract:    Contract{Bidder: 1, Trump: TrumpSpades, Value: Contract120, Multiplier: 1},
			points:      [2]int{90, 72},
			rules:       DefaultRules(),
			wantOutcome: OutcomeFailure,
			wantScores:  [2]int{162, 0},
		},
		{
			name:        "DoubledFailure",
			contract:    Contract{Bidder: 1, Trump: TrumpSpades, Value: Contract120, Multiplier: 2},
			points:      [2]int{90, 72},
			rules:       DefaultRules(),
			wantOutcome: OutcomeFailure,
			wantScores:  [2]int{324, 0},
		},
		{
			name:        "DoubledSuccessMultipliesTakers",
			contract:    Contract{Bidder: 0, Trump: TrumpHearts, Value: Contract100, Multiplier: 2},
			points:      [2]int{110, 52},
			rules:       DefaultRules(),
			wantOutcome: OutcomeSuccess,
			wantScores:  [2]int{220, 52},
		},
		{
			name:         "CapotSuccessPaysFixedBonus",
			contract:     Contract{Bidder: 0, Trump: TrumpHearts, Value: Capot, Multiplier: 2},
			points:       [2]int{162, 0},
			takingWonAll: true,
			rules:        DefaultRules(),
			wantOutcome:  OutcomeSuccessCapot,
			wantScores:   [2]int{500, 0},
		},
		{
			name:        "CapotFailure",
			contract:    Contract{Bidder: 0, Trump: TrumpHearts, Value: Capot, Multiplier: 1},
			points:      [2]int{150, 12},
			rules:       DefaultRules(),
			wantOutcome: OutcomeFailure,
			wantScores:  [2]int{0, 162},
		},
		{
			name:        "BeloteSurvivesFailure",
			contract:    Contract{Bidder: 0, Trump: TrumpHearts, Value: Contract160, Multiplier: 1},
			points:      [2]int{100, 62},
			belote:      &team0,
			rules:       DefaultRules(),
			wantOutcome: OutcomeFailure,
			wantScores:  [2]int{20, 162},
		},
		{
			name:        "RoundToTenConvention",
			contract:    Contract{Bidder: 0, Trump: TrumpHearts, Value: Contract80, Multiplier: 1},
			points:      [2]int{85, 77},
			rules:       Rules{TargetScore: 1000, CapotBonus: 250, BeloteBonus: 20, RoundToTen: true},
			wantOutcome: OutcomeSuccess,
			wantScores:  [2]int{90, 80},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoreRound(tt.contract, tt.points, tt.belote, tt.takingWonAll, tt.rules)
			if res.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", res.Outcome, tt.wantOutcome)
			}
			if res.Scores != tt.wantScores {
				t.Errorf("scores = %v, want %v", res.Scores, tt.wantScores)
			}
		})
	}
}
