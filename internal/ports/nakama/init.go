package nakama

import (
	"context"
	"database/sql"

	"coinche/internal/bot"
	"coinche/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, the match handler and the wins leaderboard for
// the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("InitModule: Could not load game config: %v", err)
	}
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		logger.Warn("InitModule: Could not provision bots: %v", err)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameCoinche, NewMatch); err != nil {
		return err
	}

	if err := NewNakamaLeaderboardAdapter(nk).EnsureLeaderboard(ctx); err != nil {
		logger.Warn("InitModule: Could not ensure leaderboard: %v", err)
	}

	logger.Info("Coinche Go module loaded.")
	return nil
}
