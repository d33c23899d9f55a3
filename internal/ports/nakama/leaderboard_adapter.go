package nakama

import (
	"context"
	"fmt"

	"coinche/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// LeaderboardID is the authoritative wins leaderboard written at game end.
const LeaderboardID = "coinche_wins"

// NakamaLeaderboardAdapter implements ports.LeaderboardPort using Nakama's
// leaderboard system.
type NakamaLeaderboardAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter.
func NewNakamaLeaderboardAdapter(nk runtime.NakamaModule) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk}
}

// EnsureLeaderboard creates the wins leaderboard if it does not exist yet.
// Creation is idempotent on the Nakama side.
func (a *NakamaLeaderboardAdapter) EnsureLeaderboard(ctx context.Context) error {
	if err := a.nk.LeaderboardCreate(ctx, LeaderboardID, true, "desc", "incr", "", nil, false); err != nil {
		return fmt.Errorf("failed to create leaderboard: %w", err)
	}
	return nil
}

// SubmitResults writes one record per winning player; losers keep their rank.
func (a *NakamaLeaderboardAdapter) SubmitResults(ctx context.Context, updates []ports.ResultUpdate) error {
	for _, update := range updates {
		if !update.Won {
			continue
		}
		if _, err := a.nk.LeaderboardRecordWrite(ctx, LeaderboardID, update.UserID, "", update.Score, 0, update.Metadata, nil); err != nil {
			return fmt.Errorf("failed to write leaderboard record for user %s: %w", update.UserID, err)
		}
	}
	return nil
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
