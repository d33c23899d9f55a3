package domain

// TotalPoints is the card-point total of a full round: 152 from the four
// suits plus the 10-point last-trick bonus.
const TotalPoints = 162

// LastTrickBonus is the "dix de der" awarded to the winner of trick 8.
const LastTrickBonus = 10

// ContractOutcome tags how a contract resolved.
type ContractOutcome int8

const (
	// OutcomeFailure means the taking team fell short of its target.
	OutcomeFailure ContractOutcome = iota
	// OutcomeSuccess means the taking team reached its point target.
	OutcomeSuccess
	// OutcomeSuccessCapot means the taking team won all eight tricks on
	// a capot contract.
	OutcomeSuccessCapot
)

// RoundResult is the terminal outcome of a played round.
type RoundResult struct {
	Contract   Contract        `json:"contract"`
	Outcome    ContractOutcome `json:"outcome"`
	CardPoints [2]int          `json:"card_points"` // per team, incl. last-trick bonus
	BeloteTeam *Team           `json:"belote_team,omitempty"`
	Scores     [2]int          `json:"scores"` // per team, multiplier applied
}

// scoreRound evaluates a finished round.
//
// Success pays the taking team its card points (plus its belote) times the
// multiplier while the defenders keep their own card points unscaled. A
// capot replaces the summed points with the fixed capot bonus. Failure
// hands the defenders the full round value times the multiplier. The
// belote is announced independently of the contract outcome, so the
// announcing team keeps it in every branch.
func scoreRound(contract Contract, points [2]int, beloteTeam *Team, takingWonAll bool, rules Rules) RoundResult {
	taking := contract.TakingTeam()
	defending := taking.Opponent()
	mult := contract.Multiplier

	belote := func(team Team) int {
		if beloteTeam != nil && *beloteTeam == team {
			return rules.BeloteBonus
		}
		return 0
	}

	res := RoundResult{
		Contract:   contract,
		CardPoints: points,
		BeloteTeam: beloteTeam,
	}

	switch {
	case contract.Value == Capot && takingWonAll:
		res.Outcome = OutcomeSuccessCapot
		res.Scores[taking] = rules.CapotBonus*mult + belote(taking)
		res.Scores[defending] = belote(defending)
	case contract.Value != Capot && points[taking] >= int(contract.Value):
		res.Outcome = OutcomeSuccess
		res.Scores[taking] = (points[taking] + belote(taking)) * mult
		res.Scores[defending] = points[defending] + belote(defending)
	default:
		res.Outcome = OutcomeFailure
		res.Scores[defending] = (TotalPoints + belote(defending)) * mult
		res.Scores[taking] = belote(taking)
	}

	if rules.RoundToTen {
		res.Scores[0] = roundToTen(res.Scores[0])
		res.Scores[1] = roundToTen(res.Scores[1])
	}

	return res
}

func roundToTen(n int) int {
	return (n + 5) / 10 * 10
}
