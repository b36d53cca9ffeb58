// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the candy board.
package config

import "time"

// CandyConfig contains all configuration for the candy game.
type CandyConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Timing   TimingConfig   `yaml:"timing"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Rules    RulesConfig    `yaml:"rules"`
	Campaign CampaignConfig `yaml:"campaign"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Width  int `yaml:"width"`  // Side length of the square board
	Colors int `yaml:"colors"` // Palette size, 3 to 6
}

// TimingConfig defines the stabilization clock.
type TimingConfig struct {
	TickInterval   time.Duration `yaml:"tick_interval"`   // One match sweep plus one gravity pass
	NotifyDuration time.Duration `yaml:"notify_duration"` // How long a notification stays up
}

// ScoringConfig defines run tiers and their weights.
type ScoringConfig struct {
	RowMultiplier    int   `yaml:"row_multiplier"`
	ColumnMultiplier int   `yaml:"column_multiplier"`
	Tiers            []int `yaml:"tiers"` // Run lengths, highest priority first
}

// RulesConfig selects between rule variants.
type RulesConfig struct {
	InitialFill string `yaml:"initial_fill"` // "stable" or "random"
	Cascade     string `yaml:"cascade"`      // "ticked" or "sync"
	Reshuffle   bool   `yaml:"reshuffle"`    // Re-roll a board with no legal move
}

// CampaignConfig tunes campaign levels.
type CampaignConfig struct {
	MoveScale float64 `yaml:"move_scale"` // Multiplier on every level's move budget
}

// Rule variant names.
const (
	FillStable    = "stable"
	FillRandom    = "random"
	CascadeTicked = "ticked"
	CascadeSync   = "sync"
)

// Limits enforced by Validate.
const (
	MinWidth  = 5
	MaxWidth  = 16
	MinColors = 3
	MaxColors = 6
)

// Clone returns a deep copy; Tiers is the only shared slice.
func (c CandyConfig) Clone() CandyConfig {
	c.Scoring.Tiers = append([]int(nil), c.Scoring.Tiers...)
	return c
}
