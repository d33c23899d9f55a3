package app

import "coinche/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined    EventKind = "player_joined"
	EventPlayerLeft      EventKind = "player_left"
	EventGameStarted     EventKind = "game_started"
	EventRoundStarted    EventKind = "round_started"
	EventHandDealt       EventKind = "hand_dealt"
	EventBidPlaced       EventKind = "bid_placed"
	EventContractSet     EventKind = "contract_set"
	EventRoundVoided     EventKind = "round_voided"
	EventCardPlayed      EventKind = "card_played"
	EventBeloteAnnounced EventKind = "belote_announced"
	EventTrickWon        EventKind = "trick_won"
	EventRoundScored     EventKind = "round_scored"
	EventGameEnded       EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string      `json:"user_id"`
	Seat   domain.Seat `json:"seat"`
}

type PlayerLeftPayload struct {
	UserID string      `json:"user_id"`
	Seat   domain.Seat `json:"seat"`
}

type GameStartedPayload struct {
	TargetScore int `json:"target_score"`
}

type RoundStartedPayload struct {
	Dealer       domain.Seat `json:"dealer"`
	FirstSpeaker domain.Seat `json:"first_speaker"`
}

// HandDealtPayload is sent privately to the seat's player only.
type HandDealtPayload struct {
	Seat domain.Seat `json:"seat"`
	Hand domain.Hand `json:"hand"`
}

type BidPlacedPayload struct {
	UserID   string       `json:"user_id"`
	Seat     domain.Seat  `json:"seat"`
	Bid      domain.Bid   `json:"bid"`
	NextSeat *domain.Seat `json:"next_seat,omitempty"`
}

type ContractSetPayload struct {
	Contract domain.Contract `json:"contract"`
	Leader   domain.Seat     `json:"leader"`
}

type RoundVoidedPayload struct {
	NextDealer domain.Seat `json:"next_dealer"`
}

type CardPlayedPayload struct {
	UserID   string       `json:"user_id"`
	Seat     domain.Seat  `json:"seat"`
	Card     domain.Card  `json:"card"`
	NextSeat *domain.Seat `json:"next_seat,omitempty"`
}

type BeloteAnnouncedPayload struct {
	Seat     domain.Seat `json:"seat"`
	Rebelote bool        `json:"rebelote"`
}

type TrickWonPayload struct {
	Winner domain.Seat `json:"winner"`
	Points int         `json:"points"`
}

type RoundScoredPayload struct {
	Result domain.RoundResult `json:"result"`
	Totals [2]int             `json:"totals"`
}

type GameEndedPayload struct {
	Winner domain.Team `json:"winner"`
	Scores [2]int      `json:"scores"`
}
