package bot

import (
	"fmt"
)

// BotLevel selects a strategy strength.
type BotLevel int

const (
	BotLevelGood BotLevel = iota + 1
	BotLevelSmart
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{}, nil
	case BotLevelSmart:
		return &SmartBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// BrainForLevel maps the identity pool's level names onto strategies,
// falling back to the good bot for unknown labels.
func BrainForLevel(level string) Brain {
	switch level {
	case "smart", "hard":
		return &SmartBot{Tuning: DefaultTuning}
	default:
		return &GoodBot{}
	}
}
