package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

func press(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuSelections(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}

	tests := []struct {
		name string
		keys []tea.Msg
		want MenuResult
	}{
		{"campaign", []tea.Msg{enter}, MenuResult{GameID: candy.IDCampaign}},
		{"endless", []tea.Msg{down, enter}, MenuResult{GameID: candy.IDEndless}},
		{"level 3", []tea.Msg{down, down, enter, down, down, enter}, MenuResult{GameID: candy.IDCampaign, Level: 3}},
		{"history", []tea.Msg{down, down, down, enter}, MenuResult{WantsHistory: true}},
		{"quit", []tea.Msg{keyMsg("q")}, MenuResult{Quit: true}},
		{"back from level select", []tea.Msg{down, down, enter, esc, down, enter}, MenuResult{WantsHistory: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, NewMenuModel(cfg), tt.keys...).(MenuModel)
			got := m.Result()
			tt.want.Config = cfg
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMenuCursorClamps(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	keys := []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}}
	for range 10 {
		keys = append(keys, down)
	}
	keys = append(keys, enter)

	m := press(t, NewMenuModel(cfg), keys...).(MenuModel)
	assert.True(t, m.Result().WantsHistory, "cursor should stop on the last entry")
}

func TestMenuViewAndResize(t *testing.T) {
	m := press(t, NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}),
		tea.WindowSizeMsg{Width: 100, Height: 40}).(MenuModel)

	view := m.View()
	assert.Contains(t, view, "C A N D Y")
	assert.Contains(t, view, "Endless")
	assert.Equal(t, 100, m.Result().Config.ScreenW)

	m = press(t, m, down, down, enter).(MenuModel)
	view = m.View()
	for _, name := range candy.LevelNames() {
		assert.Contains(t, view, name)
	}
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 4))
	styled := cursorStyle.Render("ab")
	assert.True(t, strings.HasPrefix(centerText(styled, 6), "  "), "styled text is measured by printed width")
}

// fakeSessions serves a fixed session list.
type fakeSessions struct {
	sessions []storage.SessionRecord
	queried  []string
	deleted  []string
	err      error
}

func (f *fakeSessions) RecentSessions(gameID string, limit int) ([]storage.SessionRecord, error) {
	f.queried = append(f.queried, gameID)
	if f.err != nil {
		return nil, f.err
	}
	var out []storage.SessionRecord
	for _, s := range f.sessions {
		if gameID == "" || s.GameID == gameID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessions) DeleteSession(id string) error {
	f.deleted = append(f.deleted, id)
	kept := f.sessions[:0]
	for _, s := range f.sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	return nil
}

func TestHistoryTabsAndDelete(t *testing.T) {
	src := &fakeSessions{sessions: []storage.SessionRecord{
		{ID: "11111111-aaaa", GameID: candy.IDCampaign, StartLevel: 2, Score: 900, Ticks: 400, Finished: true},
		{ID: "22222222-bbbb", GameID: candy.IDEndless, Score: 120, Ticks: 50},
	}}

	var m tea.Model = NewHistoryModel(src, 100, 30)
	view := m.View()
	assert.Contains(t, view, "11111111")
	assert.Contains(t, view, "22222222")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, []string{"", candy.IDCampaign}, src.queried)
	assert.NotContains(t, m.View(), "22222222")

	m = press(t, m, keyMsg("x"))
	require.Equal(t, []string{"11111111-aaaa"}, src.deleted)
	assert.Contains(t, m.View(), "No sessions journaled yet")

	m = press(t, m, esc)
	assert.True(t, m.(HistoryModel).IsGoingBack())
}

func TestHistoryLoadError(t *testing.T) {
	src := &fakeSessions{err: errors.New("database is locked")}
	m := NewHistoryModel(src, 100, 30)
	assert.Contains(t, m.View(), "database is locked")
}

func TestSessionRow(t *testing.T) {
	row := sessionRow(storage.SessionRecord{ID: "0123456789abcdef", GameID: candy.IDEndless, Score: 42, Ticks: 7})
	assert.Equal(t, "01234567", row[0])
	assert.Equal(t, "endless", row[1])
	assert.Equal(t, "-", row[2])
	assert.Equal(t, "42", row[3])
	assert.Equal(t, "", row[5])

	row = sessionRow(storage.SessionRecord{ID: "x", GameID: candy.IDCampaign, StartLevel: 4, Finished: true})
	assert.Equal(t, "campaign", row[1])
	assert.Equal(t, "4", row[2])
	assert.Equal(t, "yes", row[5])
}
