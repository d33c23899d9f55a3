package domain

import (
	"errors"
	"testing"
)

// sweepHands gives the trump seat all hearts and spreads the other suits
// over the remaining seats, so whoever holds hearts wins every trick.
func sweepHands(trumpSeat Seat) [NumSeats]Hand {
	suits := []Suit{Spades, Diamonds, Clubs}
	var hands [NumSeats]Hand
	for r := Seven; r <= Ace; r++ {
		hands[trumpSeat] = append(hands[trumpSeat], Card{Suit: Hearts, Rank: r})
	}
	i := 0
	for seat := Seat(0); seat < NumSeats; seat++ {
		if seat == trumpSeat {
			continue
		}
		for r := Seven; r <= Ace; r++ {
			hands[seat] = append(hands[seat], Card{Suit: suits[i], Rank: r})
		}
		i++
	}
	return hands
}

// sweepRound bids hearts for the seat left of the dealer and plays the
// round out, letting that seat take all eight tricks.
func sweepRound(t *testing.T, g *Game) {
	t.Helper()
	taker := g.Dealer.Next()
	if err := g.StartRound(deckForHands(g.Dealer, sweepHands(taker))); err != nil {
		t.Fatalf("start round: %v", err)
	}
	if err := g.SubmitBid(taker, Bid{Action: ActionBid, Trump: TrumpHearts, Value: Contract80}); err != nil {
		t.Fatalf("bid: %v", err)
	}
	for seat := taker.Next(); seat != taker; seat = seat.Next() {
		if err := g.SubmitBid(seat, PassBid); err != nil {
			t.Fatalf("pass: %v", err)
		}
	}
	for g.Round.Phase == RoundPlaying {
		seat, _ := g.Round.Turn()
		if err := g.SubmitPlay(seat, g.Round.Hands[seat][0]); err != nil {
			t.Fatalf("seat %d play: %v", seat, err)
		}
	}
}

func TestGameNoRoundGuards(t *testing.T) {
	g := NewGame(DefaultRules())
	if err := g.SubmitBid(0, PassBid); !errors.Is(err, ErrNotBidding) {
		t.Fatalf("bid without round: %v", err)
	}
	if err := g.SubmitPlay(0, Card{Suit: Hearts, Rank: Seven}); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("play without round: %v", err)
	}
	if g.LegalBids(0) != nil || g.LegalPlays(0) != nil {
		t.Fatal("legal moves without a round")
	}
}

func TestGameVoidRoundRotatesDealerOnly(t *testing.T) {
	g := NewGame(DefaultRules())
	if err := g.StartRound(NewDeck()); err != nil {
		t.Fatal(err)
	}
	if err := g.StartRound(NewDeck()); !errors.Is(err, ErrRoundInProgress) {
		t.Fatalf("restart mid-round: %v", err)
	}

	for seat, i := g.Dealer.Next(), 0; i < 4; seat, i = seat.Next(), i+1 {
		if err := g.SubmitBid(seat, PassBid); err != nil {
			t.Fatal(err)
		}
	}
	if g.Round.Phase != RoundVoid {
		t.Fatalf("phase = %v, want void", g.Round.Phase)
	}
	if g.Scores != [2]int{} || g.RoundsPlayed != 0 {
		t.Fatalf("void round touched the score: %v / %d", g.Scores, g.RoundsPlayed)
	}
	if g.Dealer != 1 {
		t.Fatalf("dealer = %d, want 1", g.Dealer)
	}
	if err := g.StartRound(NewDeck()); err != nil {
		t.Fatalf("redeal after void: %v", err)
	}
	if turn, _ := g.Round.Turn(); turn != 2 {
		t.Fatalf("first speaker = %d, want 2", turn)
	}
}

func TestGameAccumulatesAcrossRounds(t *testing.T) {
	g := NewGame(DefaultRules())

	sweepRound(t, g) // dealer 0, seat 1 sweeps for team 1
	if g.Scores != [2]int{0, TotalPoints + 20} {
		t.Fatalf("scores after round 1 = %v", g.Scores)
	}
	if g.RoundsPlayed != 1 || g.Dealer != 1 {
		t.Fatalf("rounds = %d, dealer = %d", g.RoundsPlayed, g.Dealer)
	}
	if g.Status != StatusInProgress {
		t.Fatalf("status = %v", g.Status)
	}
	if snap := g.State(); snap.Winner != nil {
		t.Fatal("winner set while in progress")
	}

	sweepRound(t, g) // dealer 1, seat 2 sweeps for team 0
	if g.Scores != [2]int{TotalPoints + 20, TotalPoints + 20} {
		t.Fatalf("scores after round 2 = %v", g.Scores)
	}
	if g.RoundsPlayed != 2 || g.Dealer != 2 {
		t.Fatalf("rounds = %d, dealer = %d", g.RoundsPlayed, g.Dealer)
	}
}

func TestGameFinishesAtTarget(t *testing.T) {
	rules := DefaultRules()
	rules.TargetScore = 150
	g := NewGame(rules)

	sweepRound(t, g) // team 1 scores 182

	if g.Status != StatusFinished || g.Winner != 1 {
		t.Fatalf("status = %v, winner = %v", g.Status, g.Winner)
	}
	snap := g.State()
	if snap.Winner == nil || *snap.Winner != 1 {
		t.Fatalf("snapshot winner = %v", snap.Winner)
	}
	if err := g.StartRound(NewDeck()); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("start after finish: %v", err)
	}
}

func TestGameTieBreaks(t *testing.T) {
	tests := []struct {
		name       string
		tieBreak   TieBreak
		roundScore [2]int // totals become 1030 each on {80, 90}
		wantDone   bool
		wantWinner Team
	}{
		{name: "TakingTeamWinsByDefault", tieBreak: TieBreakTakingTeam, roundScore: [2]int{80, 90}, wantDone: true, wantWinner: 1},
		{name: "HigherTotalWins", tieBreak: TieBreakHigherTotal, roundScore: [2]int{90, 85}, wantDone: true, wantWinner: 0},
		{name: "HigherTotalDeadTiePlaysOn", tieBreak: TieBreakHigherTotal, roundScore: [2]int{80, 90}, wantDone: false},
		{name: "PlayOn", tieBreak: TieBreakPlayOn, roundScore: [2]int{80, 90}, wantDone: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			rules.TieBreak = tt.tieBreak
			g := NewGame(rules)
			g.Scores = [2]int{950, 940}

			res := RoundResult{
				Contract: Contract{Bidder: 1, Trump: TrumpSpades, Value: Contract90, Multiplier: 1},
				Outcome:  OutcomeSuccess,
				Scores:   tt.roundScore,
			}
			g.applyResult(&res)

			if tt.wantDone {
				if g.Status != StatusFinished || g.Winner != tt.wantWinner {
					t.Fatalf("status = %v, winner = %v", g.Status, g.Winner)
				}
			} else if g.Status != StatusInProgress {
				t.Fatalf("status = %v, want in progress", g.Status)
			}
		})
	}
}
