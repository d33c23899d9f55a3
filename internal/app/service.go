package app

import (
	"errors"
	"math/rand"
	"time"

	"coinche/internal/domain"
)

// Service contains coinche use-cases operating on domain state. It owns
// the shuffle and turns domain transitions into dispatchable events; seat
// assignment and transport stay with the caller.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrWrongPlayerCount = errors.New("coinche needs exactly four players")
	ErrUnknownSeat      = errors.New("seat not found")
)

// StartGame creates a match for the given players, listed in seat order,
// and deals the first round. Hand events are private to their seat.
func (s *Service) StartGame(playerIDs []string, rules domain.Rules) (*domain.Game, []Event, error) {
	if len(playerIDs) != domain.NumSeats {
		return nil, nil, ErrWrongPlayerCount
	}
	for _, id := range playerIDs {
		if id == "" {
			return nil, nil, ErrWrongPlayerCount
		}
	}

	game := domain.NewGame(rules)
	events := []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{TargetScore: rules.TargetScore},
	}}

	dealt, err := s.deal(game, playerIDs)
	if err != nil {
		return nil, nil, err
	}
	return game, append(events, dealt...), nil
}

// StartNextRound deals a fresh round once the previous one is terminal.
func (s *Service) StartNextRound(game *domain.Game, playerIDs []string) ([]Event, error) {
	return s.deal(game, playerIDs)
}

func (s *Service) deal(game *domain.Game, playerIDs []string) ([]Event, error) {
	deck := domain.NewDeck()
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	if err := game.StartRound(deck); err != nil {
		return nil, err
	}

	round := game.Round
	events := make([]Event, 0, domain.NumSeats+1)
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Dealer:       round.Dealer,
			FirstSpeaker: round.Dealer.Next(),
		},
	})
	for seat := domain.Seat(0); seat < domain.NumSeats; seat++ {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat: seat,
				Hand: round.Hands[seat],
			},
			Recipients: []string{playerIDs[seat]},
		})
	}
	return events, nil
}

// PlaceBid applies one auction move for the seat and reports what it
// caused: the bid itself, a fixed contract, or a voided round.
func (s *Service) PlaceBid(game *domain.Game, playerIDs []string, seat domain.Seat, bid domain.Bid) ([]Event, error) {
	if !seat.Valid() {
		return nil, ErrUnknownSeat
	}
	if err := game.SubmitBid(seat, bid); err != nil {
		return nil, err
	}

	round := game.Round
	placed := BidPlacedPayload{
		UserID: userID(playerIDs, seat),
		Seat:   seat,
		Bid:    bid,
	}
	if next, ok := round.Turn(); ok && round.Phase == domain.RoundBidding {
		placed.NextSeat = &next
	}
	events := []Event{{Kind: EventBidPlaced, Payload: placed}}

	switch round.Phase {
	case domain.RoundPlaying:
		events = append(events, Event{
			Kind: EventContractSet,
			Payload: ContractSetPayload{
				Contract: *round.Contract,
				Leader:   round.Dealer.Next(),
			},
		})
	case domain.RoundVoid:
		events = append(events, Event{
			Kind:    EventRoundVoided,
			Payload: RoundVoidedPayload{NextDealer: game.Dealer},
		})
	}
	return events, nil
}

// PlayCard applies one card play for the seat and reports everything it
// resolved: the play, a belote announce, a finished trick, a scored round
// and, at the target score, the end of the match.
func (s *Service) PlayCard(game *domain.Game, playerIDs []string, seat domain.Seat, card domain.Card) ([]Event, error) {
	if !seat.Valid() {
		return nil, ErrUnknownSeat
	}
	round := game.Round
	if round == nil {
		return nil, domain.ErrNotPlaying
	}
	trick := currentTrick(round)
	beloteBefore := round.BelotePlayed

	if err := game.SubmitPlay(seat, card); err != nil {
		return nil, err
	}

	played := CardPlayedPayload{
		UserID: userID(playerIDs, seat),
		Seat:   seat,
		Card:   card,
	}
	if next, ok := round.Turn(); ok {
		played.NextSeat = &next
	}
	events := []Event{{Kind: EventCardPlayed, Payload: played}}

	if round.BelotePlayed > beloteBefore {
		events = append(events, Event{
			Kind: EventBeloteAnnounced,
			Payload: BeloteAnnouncedPayload{
				Seat:     seat,
				Rebelote: round.BelotePlayed == 2,
			},
		})
	}

	if trick != nil && trick.Complete() {
		events = append(events, Event{
			Kind: EventTrickWon,
			Payload: TrickWonPayload{
				Winner: trick.Winner,
				Points: trick.Points(round.Contract.Trump),
			},
		})
	}

	if round.Phase == domain.RoundScored {
		events = append(events, Event{
			Kind: EventRoundScored,
			Payload: RoundScoredPayload{
				Result: *round.Result,
				Totals: game.Scores,
			},
		})
	}
	if game.Status == domain.StatusFinished {
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Winner: game.Winner,
				Scores: game.Scores,
			},
		})
	}
	return events, nil
}

// currentTrick returns the trick the next play lands in, nil during the
// auction.
func currentTrick(r *domain.Round) *domain.Trick {
	if r.Phase != domain.RoundPlaying || len(r.Tricks) == 0 {
		return nil
	}
	return r.Tricks[len(r.Tricks)-1]
}

func userID(playerIDs []string, seat domain.Seat) string {
	if int(seat) >= len(playerIDs) {
		return ""
	}
	return playerIDs[seat]
}
