// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding an optional yaml
// config path. godotenv autoload in the entrypoint makes .env files work.
const EnvConfigPath = "FRUITLOOP_CONFIG"

// DeckConfig describes the full card multiset. Number counts map a face
// value to its number of copies; special counts are keyed by card name
// ("freeze", "second_chance", "flip_3", "flash", "dare", "feast", "mult_2",
// "score_1".."score_9").
type DeckConfig struct {
	NumberCounts  map[int]int    `yaml:"numberCounts"`
	SpecialCounts map[string]int `yaml:"specialCounts"`
}

// ItemConfig holds shop pricing.
type ItemConfig struct {
	Prices          map[string]int `yaml:"prices"`          // item kind -> price
	UpgradeBase     int            `yaml:"upgradeBase"`     // dynamic upgrade price floor
	UpgradePriceCap int            `yaml:"upgradePriceCap"` // dynamic upgrade price ceiling
	MaxInventory    int            `yaml:"maxInventory"`    // items a player may hold
	PassReward      int            `yaml:"passReward"`      // score credited for skipping the shop
	OfferBonus      int            `yaml:"offerBonus"`      // offer count = players + offerBonus
}

// RuleConfig carries the numeric rule thresholds.
type RuleConfig struct {
	WinScore      int `yaml:"winScore"`      // total score that ends the game
	MaxRounds     int `yaml:"maxRounds"`     // failsafe round cap; leader wins at the cap
	HandNumberCap int `yaml:"handNumberCap"` // numeric cards that force a give-up
	TollBase      int `yaml:"tollBase"`      // toll = tollBase * 2^(level-1)
	MinStake      int `yaml:"minStake"`      // smallest wager increment
	DuelPool      int `yaml:"duelPool"`      // shared duel draw pool
	DuelHandCap   int `yaml:"duelHandCap"`   // per-side duel card cap
	DuelBonus     int `yaml:"duelBonus"`     // total-score bonus for the duel winner
	ProphecyHit   int `yaml:"prophecyHit"`   // reward for a correct prophecy
	ProphecyNear  int `yaml:"prophecyNear"`  // reward when the prophesied draw is a special
}

// TimerConfig holds the phase windows and the nominal animation delays the
// engine waits out in place of the excluded renderer.
type TimerConfig struct {
	ItemPhaseSec    int `yaml:"itemPhaseSec"`
	BettingPhaseSec int `yaml:"bettingPhaseSec"`
	AIThinkMs       int `yaml:"aiThinkMs"`
	AnnounceMs      int `yaml:"announceMs"`
}

// AIConfig tunes the computer players.
type AIConfig struct {
	StandScore     int     `yaml:"standScore"`     // give up once round score reaches this
	DuelStandScore int     `yaml:"duelStandScore"` // stop drawing in a duel at this sum
	ItemPolicy     string  `yaml:"itemPolicy"`     // "skip" or "greedy"
	StakeFraction  float64 `yaml:"stakeFraction"`  // max share of total score wagered per bet
	MaxStakeBets   int     `yaml:"maxStakeBets"`   // symbols an AI wagers on per round
}

type Config struct {
	Deck   DeckConfig     `yaml:"deck"`
	Odds   map[string]int `yaml:"odds"` // symbol -> payout multiplier
	Items  ItemConfig     `yaml:"items"`
	Rules  RuleConfig     `yaml:"rules"`
	Timers TimerConfig    `yaml:"timers"`
	AI     AIConfig       `yaml:"ai"`
}

// Default returns the stock rule set.
func Default() *Config {
	numbers := map[int]int{0: 1, 1: 1}
	for v := 2; v <= 13; v++ {
		numbers[v] = v
	}
	specials := map[string]int{
		"freeze": 3, "second_chance": 3, "flip_3": 3,
		"flash": 2, "dare": 2, "feast": 2,
		"mult_2": 1,
	}
	for n := 1; n <= 9; n++ {
		specials[fmt.Sprintf("score_%d", n)] = 1
	}
	return &Config{
		Deck: DeckConfig{NumberCounts: numbers, SpecialCounts: specials},
		Odds: map[string]int{
			"apple": 2, "orange": 3, "papaya": 4, "watermelon": 5,
			"bell": 10, "star": 15, "moon": 25, "sun": 50,
		},
		Items: ItemConfig{
			Prices: map[string]int{
				"land": 5, "exchange": 4, "protection": 3,
				"prophecy": 4, "tax_free": 3,
			},
			UpgradeBase:     5,
			UpgradePriceCap: 10,
			MaxInventory:    5,
			PassReward:      1,
			OfferBonus:      2,
		},
		Rules: RuleConfig{
			WinScore:      200,
			MaxRounds:     500,
			HandNumberCap: 7,
			TollBase:      2,
			MinStake:      10,
			DuelPool:      6,
			DuelHandCap:   3,
			DuelBonus:     5,
			ProphecyHit:   10,
			ProphecyNear:  5,
		},
		Timers: TimerConfig{
			ItemPhaseSec:    20,
			BettingPhaseSec: 30,
			AIThinkMs:       1000,
			AnnounceMs:      1500,
		},
		AI: AIConfig{
			StandScore:     15,
			DuelStandScore: 15,
			ItemPolicy:     "skip",
			StakeFraction:  0.3,
			MaxStakeBets:   2,
		},
	}
}

// Load overlays the yaml file at path onto the defaults. A missing path
// returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the config named by FRUITLOOP_CONFIG, or defaults.
func FromEnv() (*Config, error) {
	return Load(os.Getenv(EnvConfigPath))
}

// Validate rejects configs the engine cannot run with.
func (c *Config) Validate() error {
	if len(c.Deck.NumberCounts) == 0 {
		return fmt.Errorf("config: deck has no number cards")
	}
	if c.Rules.WinScore <= 0 {
		return fmt.Errorf("config: winScore must be positive")
	}
	if c.Rules.HandNumberCap <= 0 {
		return fmt.Errorf("config: handNumberCap must be positive")
	}
	if c.Rules.DuelPool <= 0 || c.Rules.DuelHandCap <= 0 {
		return fmt.Errorf("config: duel pool and hand cap must be positive")
	}
	for sym, mult := range c.Odds {
		if mult <= 0 {
			return fmt.Errorf("config: odds for %q must be positive", sym)
		}
	}
	return nil
}

// ItemPhase returns the item phase window as a duration.
func (c *Config) ItemPhase() time.Duration {
	return time.Duration(c.Timers.ItemPhaseSec) * time.Second
}

// BettingPhase returns the betting phase window as a duration.
func (c *Config) BettingPhase() time.Duration {
	return time.Duration(c.Timers.BettingPhaseSec) * time.Second
}

// AIThink returns the artificial AI decision delay.
func (c *Config) AIThink() time.Duration {
	return time.Duration(c.Timers.AIThinkMs) * time.Millisecond
}

// Announce returns the nominal announcement display time.
func (c *Config) Announce() time.Duration {
	return time.Duration(c.Timers.AnnounceMs) * time.Millisecond
}
