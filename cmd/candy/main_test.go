package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

func TestGameIDForMode(t *testing.T) {
	tests := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{"campaign", candy.IDCampaign, false},
		{"endless", candy.IDEndless, false},
		{"arcade", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := gameIDForMode(tt.mode)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("gameIDForMode(%q) = %q, %v", tt.mode, got, err)
		}
	}
}

func TestLoadConfigAppliesPresetAndTick(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	flagTick = 0
	t.Cleanup(func() { flagTick = 0 })

	cfg, err := loadConfig("", "easy")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Board.Colors)

	flagTick = 50_000_000
	cfg, err = loadConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, flagTick, cfg.Timing.TickInterval)
	assert.Equal(t, config.MaxColors, cfg.Board.Colors)

	_, err = loadConfig("", "impossible")
	assert.Error(t, err)
}

func TestJournaledAutoplayReplays(t *testing.T) {
	flagDBPath = filepath.Join(t.TempDir(), "journal.db")
	t.Cleanup(func() { flagDBPath = storage.DefaultPath })

	res := candy.Autoplay(candy.AutoplayOptions{
		Mode:   candy.ModeCampaign,
		Config: config.DefaultCandyConfig(),
		Seed:   11,
		Ticks:  500,
		Every:  4,
	})
	require.NotEmpty(t, res.Recording.Swaps)

	id, err := saveRecording(res.Recording)
	require.NoError(t, err)

	store, err := storage.Open(flagDBPath)
	require.NoError(t, err)
	defer store.Close()

	session, err := store.Session(id[:8])
	require.NoError(t, err)
	swaps, err := store.Swaps(session.ID)
	require.NoError(t, err)

	rec, err := recordingFromJournal(session, swaps)
	require.NoError(t, err)
	assert.False(t, rec.Unfinished)
	assert.Equal(t, res.Recording.Config, rec.Config, "config survives the YAML round trip")

	replayed, err := candy.Replay(rec)
	require.NoError(t, err)
	assert.Equal(t, res.Snapshot.Board, replayed.Snapshot.Board)
	assert.Equal(t, res.Snapshot.Score, replayed.Snapshot.Score)
}

func TestRecordingFromJournalRejectsBadConfig(t *testing.T) {
	session := &storage.SessionRecord{ID: "x", GameID: candy.IDEndless, Config: "board:\n  width: 2\n"}
	_, err := recordingFromJournal(session, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
