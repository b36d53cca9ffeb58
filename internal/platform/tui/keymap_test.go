package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-candy/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim down", keyMsg("j"), core.ActionDown, false},
		{"vim left", keyMsg("h"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"space selects", keyMsg(" "), core.ActionSelect, false},
		{"esc drops", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"hint", keyMsg("?"), core.ActionHint, false},
		{"pause", keyMsg("p"), core.ActionPause, false},
		{"restart", keyMsg("r"), core.ActionRestart, false},
		{"quit", keyMsg("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", keyMsg("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.wantQuit {
				t.Errorf("MapKey(%q) = %v, %t; want %v, %t", tt.msg.String(), got, quit, tt.want, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if quit := km.MapKeyToFrame(keyMsg("?"), &frame); quit {
		t.Error("hint should not quit")
	}
	if quit := km.MapKeyToFrame(keyMsg("z"), &frame); quit {
		t.Error("unbound key should not quit")
	}
	if !frame.Has(core.ActionHint) {
		t.Error("frame should carry the hint action")
	}
	if len(frame.Actions) != 1 {
		t.Errorf("frame has %d actions, want 1", len(frame.Actions))
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{keyMsg("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{keyMsg("q"), MenuActionQuit},
		{keyMsg("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestGameKeyMapHelp(t *testing.T) {
	keys := DefaultGameKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 10 {
		t.Errorf("full help lists %d bindings, want 10", total)
	}
}
