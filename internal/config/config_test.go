package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if want := DefaultCandyConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, want)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  colors: 4\ntiming:\n  tick_interval: 50ms\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Board.Colors != 4 {
		t.Errorf("colors = %d, want 4", cfg.Board.Colors)
	}
	if cfg.Board.Width != 8 {
		t.Errorf("width = %d, want default 8", cfg.Board.Width)
	}
	if cfg.Timing.TickInterval != 50*time.Millisecond {
		t.Errorf("tick_interval = %v, want 50ms", cfg.Timing.TickInterval)
	}
	if cfg.Timing.NotifyDuration != 2*time.Second {
		t.Errorf("notify_duration = %v, want default 2s", cfg.Timing.NotifyDuration)
	}
	if !reflect.DeepEqual(cfg.Scoring.Tiers, []int{5, 4, 3}) {
		t.Errorf("tiers = %v, want default", cfg.Scoring.Tiers)
	}
}

func TestParseReplacesTiers(t *testing.T) {
	cfg, err := Parse([]byte("scoring:\n  tiers: [3]\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Scoring.Tiers, []int{3}) {
		t.Errorf("tiers = %v, want [3]", cfg.Scoring.Tiers)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultCandyConfig()
	cfg.Rules.Cascade = CascadeSync
	cfg.Timing.TickInterval = 250 * time.Millisecond

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal) error: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CandyConfig)
		ok     bool
	}{
		{"defaults", func(*CandyConfig) {}, true},
		{"narrow board", func(c *CandyConfig) { c.Board.Width = 4 }, false},
		{"huge board", func(c *CandyConfig) { c.Board.Width = 40 }, false},
		{"two colors", func(c *CandyConfig) { c.Board.Colors = 2 }, false},
		{"seven colors", func(c *CandyConfig) { c.Board.Colors = 7 }, false},
		{"zero tick", func(c *CandyConfig) { c.Timing.TickInterval = 0 }, false},
		{"negative notify", func(c *CandyConfig) { c.Timing.NotifyDuration = -time.Second }, false},
		{"no tiers", func(c *CandyConfig) { c.Scoring.Tiers = nil }, false},
		{"tier longer than board", func(c *CandyConfig) { c.Scoring.Tiers = []int{9} }, false},
		{"duplicate tier", func(c *CandyConfig) { c.Scoring.Tiers = []int{3, 3} }, false},
		{"bad fill", func(c *CandyConfig) { c.Rules.InitialFill = "magic" }, false},
		{"bad cascade", func(c *CandyConfig) { c.Rules.Cascade = "instant" }, false},
		{"sync cascade", func(c *CandyConfig) { c.Rules.Cascade = CascadeSync }, true},
		{"zero move scale", func(c *CandyConfig) { c.Campaign.MoveScale = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCandyConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadCandyCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candy.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  reshuffle: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCandy(path)
	if err != nil {
		t.Fatalf("LoadCandy error: %v", err)
	}
	if !cfg.Rules.Reshuffle {
		t.Error("reshuffle should be enabled by the custom file")
	}
}

func TestLoadCandyCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadCandy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  width: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCandy(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadCandy(invalid) = %v, want ErrInvalidConfig", err)
	}

	garbage := filepath.Join(dir, "garbage.yaml")
	if err := os.WriteFile(garbage, []byte("board: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCandy(garbage); err == nil {
		t.Error("unparseable custom config should fail")
	}
}

func TestLoadCandyFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadCandy("")
	if err != nil {
		t.Fatalf("LoadCandy error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultCandyConfig()) {
		t.Errorf("LoadCandy(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadCandyLocalDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", ConfigFile), []byte("board:\n  width: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCandy("")
	if err != nil {
		t.Fatalf("LoadCandy error: %v", err)
	}
	if cfg.Board.Width != 6 {
		t.Errorf("width = %d, want 6 from ./configs", cfg.Board.Width)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		colors int
		scale  float64
	}{
		{DifficultyEasy, 5, 1.5},
		{DifficultyNormal, 6, 1.0},
		{DifficultyHard, 6, 0.75},
		{DifficultyFixed, 4, 2.0},
	}
	for _, tt := range tests {
		cfg := DefaultCandyConfig()
		cfg.Board.Colors = 4
		cfg.Campaign.MoveScale = 2.0
		ApplyCandyPreset(&cfg, tt.preset)
		if cfg.Board.Colors != tt.colors || cfg.Campaign.MoveScale != tt.scale {
			t.Errorf("%s: colors=%d scale=%v, want %d %v", tt.preset, cfg.Board.Colors, cfg.Campaign.MoveScale, tt.colors, tt.scale)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for _, in := range []string{"easy", "Normal", " hard ", "fixed"} {
		if _, err := ParsePreset(in); err != nil {
			t.Errorf("ParsePreset(%q) error: %v", in, err)
		}
	}
	if p, _ := ParsePreset(""); p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, want normal", p)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestScaleMoves(t *testing.T) {
	tests := []struct {
		scale float64
		base  int
		want  int
	}{
		{1.0, 20, 20},
		{1.5, 20, 30},
		{0.75, 25, 19},
		{0.01, 20, 1},
		{0, 20, 20},
	}
	for _, tt := range tests {
		got := CampaignConfig{MoveScale: tt.scale}.ScaleMoves(tt.base)
		if got != tt.want {
			t.Errorf("ScaleMoves(%d) at %v = %d, want %d", tt.base, tt.scale, got, tt.want)
		}
	}
}
