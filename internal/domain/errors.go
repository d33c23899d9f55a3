package domain

import "errors"

// Every error below is recoverable: a rejected action leaves the engine
// state exactly as it was, and the caller may retry with corrected input.
var (
	// ErrNotYourTurn is returned when a seat acts out of turn.
	ErrNotYourTurn = errors.New("not your turn")

	// Bidding errors.
	ErrNotBidding      = errors.New("round is not in the bidding phase")
	ErrBidTooLow       = errors.New("bid must raise the current contract")
	ErrBidAfterDouble  = errors.New("cannot raise a doubled contract")
	ErrNothingToDouble = errors.New("no contract to double")
	ErrBadDouble       = errors.New("double not available to this team")
	ErrBadRedouble     = errors.New("redouble not available")

	// Play errors.
	ErrNotPlaying     = errors.New("round is not in the play phase")
	ErrCardNotHeld    = errors.New("card is not in hand")
	ErrMustFollowSuit = errors.New("must follow the lead suit")
	ErrMustPlayTrump  = errors.New("must play a trump")
	ErrMustOvertrump  = errors.New("must play a higher trump")

	// Lifecycle errors.
	ErrRoundOver       = errors.New("round is already terminal")
	ErrRoundInProgress = errors.New("a round is already in progress")
	ErrGameFinished    = errors.New("game is finished")
	ErrBadDeal         = errors.New("deck must contain the 32 distinct cards")
)
