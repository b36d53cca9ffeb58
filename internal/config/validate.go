package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports every impossible value in cfg, joined into one error.
func Validate(cfg CandyConfig) error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if cfg.Board.Width < MinWidth || cfg.Board.Width > MaxWidth {
		bad("board.width %d not in [%d, %d]", cfg.Board.Width, MinWidth, MaxWidth)
	}
	if cfg.Board.Colors < MinColors || cfg.Board.Colors > MaxColors {
		bad("board.colors %d not in [%d, %d]", cfg.Board.Colors, MinColors, MaxColors)
	}

	if cfg.Timing.TickInterval <= 0 {
		bad("timing.tick_interval must be positive, got %v", cfg.Timing.TickInterval)
	}
	if cfg.Timing.NotifyDuration < 0 {
		bad("timing.notify_duration must not be negative, got %v", cfg.Timing.NotifyDuration)
	}

	if cfg.Scoring.RowMultiplier < 0 || cfg.Scoring.ColumnMultiplier < 0 {
		bad("scoring multipliers must not be negative")
	}
	if len(cfg.Scoring.Tiers) == 0 {
		bad("scoring.tiers is empty")
	}
	seen := make(map[int]bool, len(cfg.Scoring.Tiers))
	for _, l := range cfg.Scoring.Tiers {
		if l < 2 || l > cfg.Board.Width {
			bad("scoring tier %d not in [2, board.width]", l)
		}
		if seen[l] {
			bad("scoring tier %d listed twice", l)
		}
		seen[l] = true
	}

	switch cfg.Rules.InitialFill {
	case FillStable, FillRandom:
	default:
		bad("rules.initial_fill %q (want %s or %s)", cfg.Rules.InitialFill, FillStable, FillRandom)
	}
	switch cfg.Rules.Cascade {
	case CascadeTicked, CascadeSync:
	default:
		bad("rules.cascade %q (want %s or %s)", cfg.Rules.Cascade, CascadeTicked, CascadeSync)
	}

	if cfg.Campaign.MoveScale <= 0 {
		bad("campaign.move_scale must be positive, got %v", cfg.Campaign.MoveScale)
	}

	return errors.Join(errs...)
}
