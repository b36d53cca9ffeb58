package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/candy.yaml
var defaultCandyYAML []byte

// DefaultCandyConfig returns the hard-coded default configuration.
// It matches defaults/candy.yaml.
func DefaultCandyConfig() CandyConfig {
	return CandyConfig{
		Board: BoardConfig{
			Width:  8,
			Colors: 6,
		},
		Timing: TimingConfig{
			TickInterval:   100 * time.Millisecond,
			NotifyDuration: 2 * time.Second,
		},
		Scoring: ScoringConfig{
			RowMultiplier:    10,
			ColumnMultiplier: 1,
			Tiers:            []int{5, 4, 3},
		},
		Rules: RulesConfig{
			InitialFill: FillStable,
			Cascade:     CascadeTicked,
			Reshuffle:   false,
		},
		Campaign: CampaignConfig{
			MoveScale: 1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCandyYAML
}
