package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/quest"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		level    quest.Level
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"enter begins", quest.Start, tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"space begins", quest.Start, space, core.ActionStart},
		{"enter ignored in level 1", quest.Level1, tea.KeyMsg{Type: tea.KeyEnter}, core.ActionNone},
		{"space kisses", quest.Level4, space, core.ActionKiss},
		{"space ignored in level 2", quest.Level2, space, core.ActionNone},
		{"q quits", quest.Level1, runes("q"), core.ActionQuit},
		{"q is typed in level 3", quest.Level3, runes("q"), core.ActionNone},
		{"r is typed in level 3", quest.Level3, runes("r"), core.ActionNone},
		{"ctrl+c quits in level 3", quest.Level3, tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"r plays again", quest.Victory, runes("r"), core.ActionRestart},
		{"r ignored mid quest", quest.Level2, runes("r"), core.ActionNone},
		{"ctrl+r restarts anywhere", quest.Level3, tea.KeyMsg{Type: tea.KeyCtrlR}, core.ActionRestart},
		{"ctrl+s screenshots", quest.Level4, tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{"letters ignored", quest.Level1, runes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg, tt.level); got != tt.expected {
				t.Errorf("MapKey(%q, %v) = %v, expected %v", tt.msg.String(), tt.level, got, tt.expected)
			}
		})
	}
}

func TestForLevelDoesNotMutate(t *testing.T) {
	km := DefaultKeyMap()
	_ = km.forLevel(quest.Level3)

	if !km.Quit.Enabled() {
		t.Error("forLevel changed the receiver's Quit binding")
	}
}

func TestHelpListsOnlyLiveBindings(t *testing.T) {
	km := DefaultKeyMap().forLevel(quest.Level4)

	enabled := 0
	for _, b := range km.ShortHelp() {
		if b.Enabled() {
			enabled++
		}
	}
	// kiss, restart, quit
	if enabled != 3 {
		t.Errorf("enabled bindings on level 4 = %d, expected 3", enabled)
	}
}
