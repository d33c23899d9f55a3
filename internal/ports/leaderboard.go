package ports

import "context"

// ResultUpdate represents one player's outcome of a finished match.
type ResultUpdate struct {
	UserID   string
	Score    int64
	Won      bool
	Metadata map[string]interface{}
}

// LeaderboardPort records finished-match results for ranking.
type LeaderboardPort interface {
	// SubmitResults writes all player results of one finished match.
	// This is called once at the end of a game to settle the table.
	SubmitResults(ctx context.Context, updates []ResultUpdate) error
}
