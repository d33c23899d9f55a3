package bot

import (
	"coinche/internal/domain"
)

// Move represents the decision made by the AI. Exactly one field is set,
// matching the round phase the decision was made in.
type Move struct {
	Bid  *domain.Bid
	Card *domain.Card
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	ChooseBid(game *domain.Game, seat domain.Seat) domain.Bid
	ChooseCard(game *domain.Game, seat domain.Seat) (domain.Card, error)
}
