package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"coinche/internal/domain"
)

// GameConfig carries the table conventions and hosting knobs loaded once
// at module startup.
type GameConfig struct {
	TargetScore int    `json:"target_score"`
	CapotBonus  int    `json:"capot_bonus"`
	BeloteBonus int    `json:"belote_bonus"`
	RoundToTen  bool   `json:"round_to_ten"`
	TieBreak    string `json:"tie_break"` // taking_team, higher_total, play_on

	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to an understaffed lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// Rules maps the loaded configuration to table rules. Missing or zero
// fields fall back to the standard conventions, so a match never starts
// with an unreachable target or a zero belote.
func Rules() domain.Rules {
	rules := domain.DefaultRules()
	if cfg == nil {
		return rules
	}
	if cfg.TargetScore > 0 {
		rules.TargetScore = cfg.TargetScore
	}
	if cfg.CapotBonus > 0 {
		rules.CapotBonus = cfg.CapotBonus
	}
	if cfg.BeloteBonus > 0 {
		rules.BeloteBonus = cfg.BeloteBonus
	}
	rules.RoundToTen = cfg.RoundToTen
	switch cfg.TieBreak {
	case "higher_total":
		rules.TieBreak = domain.TieBreakHigherTotal
	case "play_on":
		rules.TieBreak = domain.TieBreakPlayOn
	default:
		rules.TieBreak = domain.TieBreakTakingTeam
	}
	return rules
}

// TurnDurationSeconds returns the per-turn deadline, defaulting to 30s.
func TurnDurationSeconds() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return 30
	}
	return cfg.TurnDurationSeconds
}

// BotAutoFillDelaySeconds returns the lobby backfill delay, defaulting to 10s.
func BotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 10
	}
	return cfg.BotAutoFillDelaySeconds
}
