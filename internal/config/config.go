package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// StakeTier maps a named tier to the coin stake settled on game end.
type StakeTier struct {
	ID    string `json:"id"`
	Stake int64  `json:"stake"`
}

// GameConfig carries platform tuning loaded from the data folder. Rule
// constants (coin costs, card copies) live in the domain package; this
// file only tunes operational behavior.
type GameConfig struct {
	DefaultTier string      `json:"default_tier"`
	Tiers       []StakeTier `json:"tiers"`
	// WelcomeBonusCoins is granted once to each new account.
	WelcomeBonusCoins int64 `json:"welcome_bonus_coins"`
	// BotAutoFillDelaySeconds is how long a solo human waits before a bot
	// opponent is seated.
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

// GetGameConfig returns the global game configuration, nil when not loaded.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetStake returns the stake for a tier ID, or the default tier's stake.
func GetStake(tierID string) int64 {
	if cfg == nil {
		return 100 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.Stake
		}
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.Stake
		}
	}

	return 100
}

// GetWelcomeBonus returns the one-time bonus for new accounts.
func GetWelcomeBonus() int64 {
	if cfg == nil || cfg.WelcomeBonusCoins <= 0 {
		return 1000
	}
	return cfg.WelcomeBonusCoins
}
