package domain

// GameStatus is the lifecycle of a match.
type GameStatus int8

const (
	// StatusInProgress means the match is still being played.
	StatusInProgress GameStatus = iota
	// StatusFinished means a team has crossed the target score.
	StatusFinished
)

// Game is one match: cumulative team scores, the dealer rotation, and the
// current round. A game only finishes immediately after a round's scoring
// step, never mid-round.
type Game struct {
	Rules        Rules      `json:"rules"`
	Scores       [2]int     `json:"scores"`
	Dealer       Seat       `json:"dealer"`
	Round        *Round     `json:"round,omitempty"`
	RoundsPlayed int        `json:"rounds_played"`
	Status       GameStatus `json:"status"`
	// Winner is meaningful only once Status is StatusFinished.
	Winner Team `json:"winner"`
}

// GameSnapshot is the caller-facing view of match state.
type GameSnapshot struct {
	Scores       [2]int     `json:"scores"`
	TargetScore  int        `json:"target_score"`
	RoundsPlayed int        `json:"rounds_played"`
	Status       GameStatus `json:"status"`
	Winner       *Team      `json:"winner,omitempty"`
}

// NewGame starts a match with seat 0 as first dealer.
func NewGame(rules Rules) *Game {
	return &Game{Rules: rules}
}

// StartRound deals a new round from the supplied shuffled deck. The
// previous round must be terminal.
func (g *Game) StartRound(deck []Card) error {
	if g.Status == StatusFinished {
		return ErrGameFinished
	}
	if g.Round != nil && !g.Round.Terminal() {
		return ErrRoundInProgress
	}
	r, err := NewRoundWithRules(g.Dealer, deck, g.Rules)
	if err != nil {
		return err
	}
	g.Round = r
	return nil
}

// SubmitBid forwards an auction move to the current round. A voided round
// rotates the dealer without touching the scores.
func (g *Game) SubmitBid(seat Seat, bid Bid) error {
	if g.Round == nil {
		return ErrNotBidding
	}
	if err := g.Round.SubmitBid(seat, bid); err != nil {
		return err
	}
	if g.Round.Phase == RoundVoid {
		g.Dealer = g.Dealer.Next()
	}
	return nil
}

// SubmitPlay forwards a card play to the current round. Scoring the eighth
// trick folds the round result into the cumulative scores and may finish
// the match.
func (g *Game) SubmitPlay(seat Seat, card Card) error {
	if g.Round == nil {
		return ErrNotPlaying
	}
	if err := g.Round.SubmitPlay(seat, card); err != nil {
		return err
	}
	if g.Round.Phase == RoundScored {
		g.applyResult(g.Round.Result)
	}
	return nil
}

// LegalBids returns the seat's legal auction moves in the current round.
func (g *Game) LegalBids(seat Seat) []Bid {
	if g.Round == nil {
		return nil
	}
	return g.Round.LegalBids(seat)
}

// LegalPlays returns the seat's legal cards in the current round.
func (g *Game) LegalPlays(seat Seat) []Card {
	if g.Round == nil {
		return nil
	}
	return g.Round.LegalPlays(seat)
}

// State returns the caller-facing match snapshot.
func (g *Game) State() GameSnapshot {
	snap := GameSnapshot{
		Scores:       g.Scores,
		TargetScore:  g.Rules.TargetScore,
		RoundsPlayed: g.RoundsPlayed,
		Status:       g.Status,
	}
	if g.Status == StatusFinished {
		w := g.Winner
		snap.Winner = &w
	}
	return snap
}

func (g *Game) applyResult(res *RoundResult) {
	g.Scores[0] += res.Scores[0]
	g.Scores[1] += res.Scores[1]
	g.RoundsPlayed++
	g.Dealer = g.Dealer.Next()

	crossed0 := g.Scores[0] >= g.Rules.TargetScore
	crossed1 := g.Scores[1] >= g.Rules.TargetScore

	switch {
	case crossed0 && crossed1:
		g.finishOnTie(res)
	case crossed0:
		g.finish(0)
	case crossed1:
		g.finish(1)
	}
}

// finishOnTie resolves both teams crossing the target in the same round,
// per the configured table convention.
func (g *Game) finishOnTie(res *RoundResult) {
	switch g.Rules.TieBreak {
	case TieBreakHigherTotal:
		if g.Scores[0] > g.Scores[1] {
			g.finish(0)
		} else if g.Scores[1] > g.Scores[0] {
			g.finish(1)
		}
		// Dead tie keeps playing.
	case TieBreakPlayOn:
		// Another round decides it.
	default:
		g.finish(res.Contract.TakingTeam())
	}
}

func (g *Game) finish(winner Team) {
	g.Status = StatusFinished
	g.Winner = winner
}
