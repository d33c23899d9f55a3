package domain

// BidValue is the point target a contract commits to. Values form a fixed
// ascending scale; Capot sits above the numeric targets and commits the
// team to winning all eight tricks.
type BidValue int

const (
	Contract80  BidValue = 80
	Contract90  BidValue = 90
	Contract100 BidValue = 100
	Contract110 BidValue = 110
	Contract120 BidValue = 120
	Contract130 BidValue = 130
	Contract140 BidValue = 140
	Contract150 BidValue = 150
	Contract160 BidValue = 160
	Capot       BidValue = 250
)

// BidValues is the full scale in ascending order.
var BidValues = []BidValue{
	Contract80, Contract90, Contract100, Contract110, Contract120,
	Contract130, Contract140, Contract150, Contract160, Capot,
}

func validBidValue(v BidValue) bool {
	for _, bv := range BidValues {
		if bv == v {
			return true
		}
	}
	return false
}

// BidAction discriminates the kinds of auction moves.
type BidAction int8

const (
	// ActionBid names a trump and a value, raising the current contract.
	ActionBid BidAction = iota
	// ActionPass declines to act. Always legal on a player's turn.
	ActionPass
	// ActionDouble doubles the stakes of the opponents' contract.
	ActionDouble
	// ActionRedouble doubles back a doubled contract.
	ActionRedouble
)

// Bid is a single auction move. Trump and Value are only meaningful for
// ActionBid.
type Bid struct {
	Action BidAction `json:"action"`
	Trump  Trump     `json:"trump,omitempty"`
	Value  BidValue  `json:"value,omitempty"`
}

// PassBid is the always-legal pass.
var PassBid = Bid{Action: ActionPass}

// Contract is the accepted outcome of an auction: the trump, the target the
// taking team must reach, and the stake multiplier (1 plain, 2 doubled,
// 4 redoubled).
type Contract struct {
	Bidder     Seat     `json:"bidder"`
	Trump      Trump    `json:"trump"`
	Value      BidValue `json:"value"`
	Multiplier int      `json:"multiplier"`
}

// TakingTeam returns the team committed to the contract.
func (c Contract) TakingTeam() Team {
	return c.Bidder.Team()
}

// AuctionState is the lifecycle of an auction.
type AuctionState int8

const (
	// AuctionOpen means players are still bidding.
	AuctionOpen AuctionState = iota
	// AuctionClosed means a contract was accepted and play may begin.
	AuctionClosed
	// AuctionVoid means all four players passed without a bid; the round
	// is void and must be redealt.
	AuctionVoid
)

// Auction is the turn-ordered bidding state machine. The first speaker is
// the player left of the dealer; turns cycle until three consecutive passes
// follow a bid (closing on that bid) or four consecutive passes open the
// auction with no bid at all (voiding the round).
type Auction struct {
	Turn      Seat         `json:"turn"`
	Current   *Contract    `json:"current,omitempty"`
	PassCount int          `json:"pass_count"`
	State     AuctionState `json:"state"`
}

// NewAuction opens an auction with the given first speaker.
func NewAuction(first Seat) *Auction {
	return &Auction{Turn: first}
}

// Submit applies one auction move for the seat. On error the auction is
// left unchanged.
func (a *Auction) Submit(seat Seat, bid Bid) error {
	if a.State != AuctionOpen {
		return ErrNotBidding
	}
	if seat != a.Turn {
		return ErrNotYourTurn
	}

	switch bid.Action {
	case ActionPass:
		a.PassCount++
		if a.Current != nil {
			if a.PassCount >= 3 {
				a.State = AuctionClosed
			}
		} else if a.PassCount >= 4 {
			a.State = AuctionVoid
		}

	case ActionBid:
		if !validBidValue(bid.Value) {
			return ErrBidTooLow
		}
		if a.Current != nil {
			if a.Current.Multiplier > 1 {
				return ErrBidAfterDouble
			}
			if bid.Value <= a.Current.Value {
				return ErrBidTooLow
			}
		}
		a.Current = &Contract{Bidder: seat, Trump: bid.Trump, Value: bid.Value, Multiplier: 1}
		a.PassCount = 0

	case ActionDouble:
		if a.Current == nil {
			return ErrNothingToDouble
		}
		if a.Current.Multiplier != 1 || seat.Team() == a.Current.TakingTeam() {
			return ErrBadDouble
		}
		a.Current.Multiplier = 2
		a.PassCount = 0

	case ActionRedouble:
		if a.Current == nil || a.Current.Multiplier != 2 || seat.Team() != a.Current.TakingTeam() {
			return ErrBadRedouble
		}
		a.Current.Multiplier = 4
		a.PassCount = 0
		// Nothing can follow a redouble; the auction closes at once.
		a.State = AuctionClosed

	default:
		return ErrBidTooLow
	}

	a.Turn = a.Turn.Next()
	return nil
}

// LegalBids enumerates every move the seat may make right now. It is empty
// when the auction is over or it is not the seat's turn.
func (a *Auction) LegalBids(seat Seat) []Bid {
	if a.State != AuctionOpen || seat != a.Turn {
		return nil
	}

	bids := []Bid{PassBid}

	if a.Current == nil || a.Current.Multiplier == 1 {
		floor := BidValue(0)
		if a.Current != nil {
			floor = a.Current.Value
		}
		for _, v := range BidValues {
			if v <= floor {
				continue
			}
			for _, t := range Trumps {
				bids = append(bids, Bid{Action: ActionBid, Trump: t, Value: v})
			}
		}
	}

	if a.Current != nil {
		switch {
		case a.Current.Multiplier == 1 && seat.Team() != a.Current.TakingTeam():
			bids = append(bids, Bid{Action: ActionDouble})
		case a.Current.Multiplier == 2 && seat.Team() == a.Current.TakingTeam():
			bids = append(bids, Bid{Action: ActionRedouble})
		}
	}

	return bids
}
