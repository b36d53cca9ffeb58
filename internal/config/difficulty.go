package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset leaves the loaded config alone.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyCandyPreset modifies the config based on a difficulty preset.
// Fewer colors make runs more likely; the move scale widens or tightens
// every campaign level's budget.
func ApplyCandyPreset(cfg *CandyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Colors = 5
		cfg.Campaign.MoveScale = 1.5
	case DifficultyNormal:
		cfg.Board.Colors = MaxColors
		cfg.Campaign.MoveScale = 1.0
	case DifficultyHard:
		cfg.Board.Colors = MaxColors
		cfg.Campaign.MoveScale = 0.75
	}
}

// ScaleMoves applies the campaign move scale to a level's base budget.
// The result is at least one move.
func (c CampaignConfig) ScaleMoves(base int) int {
	scale := c.MoveScale
	if scale <= 0 {
		scale = 1
	}
	n := int(math.Round(float64(base) * scale))
	if n < 1 {
		n = 1
	}
	return n
}
