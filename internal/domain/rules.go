package domain

// TieBreak selects what happens when both teams cross the target score in
// the same round. Rulesets disagree here, so the engine makes it explicit
// rather than guessing.
type TieBreak string

const (
	// TieBreakTakingTeam awards the match to the round's taking team.
	TieBreakTakingTeam TieBreak = "taking_team"
	// TieBreakHigherTotal compares final cumulative totals; a dead tie
	// keeps the match going.
	TieBreakHigherTotal TieBreak = "higher_total"
	// TieBreakPlayOn always continues with another round.
	TieBreakPlayOn TieBreak = "play_on"
)

// Rules are the table conventions a match is played under.
type Rules struct {
	// TargetScore ends the match once a team's cumulative score reaches
	// it at a round boundary.
	TargetScore int `json:"target_score"`
	// CapotBonus is the fixed award for a successful capot contract.
	CapotBonus int `json:"capot_bonus"`
	// BeloteBonus is the award for holding and playing the trump king
	// and queen.
	BeloteBonus int `json:"belote_bonus"`
	// RoundToTen rounds final round scores to the nearest ten.
	RoundToTen bool `json:"round_to_ten"`
	// TieBreak resolves both teams crossing the target in one round.
	TieBreak TieBreak `json:"tie_break"`
}

// DefaultRules returns the common table conventions: play to 1000, capot
// worth 250, belote worth 20, exact scores, taking team wins simultaneous
// crossings.
func DefaultRules() Rules {
	return Rules{
		TargetScore: 1000,
		CapotBonus:  250,
		BeloteBonus: 20,
		RoundToTen:  false,
		TieBreak:    TieBreakTakingTeam,
	}
}
