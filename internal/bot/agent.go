package bot

import (
	"errors"

	"coinche/internal/domain"
)

// ErrNoAction means the round is terminal or it is not the agent's turn.
var ErrNoAction = errors.New("no action available")

// Agent represents an autonomous bot player seated at a table.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Act asks the agent for its move in the current round phase.
func (a *Agent) Act(game *domain.Game, seat domain.Seat) (Move, error) {
	round := game.Round
	if round == nil {
		return Move{}, ErrNoAction
	}
	turn, ok := round.Turn()
	if !ok || turn != seat {
		return Move{}, ErrNoAction
	}

	switch round.Phase {
	case domain.RoundBidding:
		bid := a.Strategy.ChooseBid(game, seat)
		return Move{Bid: &bid}, nil
	case domain.RoundPlaying:
		card, err := a.Strategy.ChooseCard(game, seat)
		if err != nil {
			return Move{}, err
		}
		return Move{Card: &card}, nil
	default:
		return Move{}, ErrNoAction
	}
}
