package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-lanes/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToFrame(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected []core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}},
		{"a", runeKey('a'), []core.Action{core.ActionLeft}},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, []core.Action{core.ActionRight}},
		{"d", runeKey('d'), []core.Action{core.ActionRight}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionJump}},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionJump, core.ActionUp}},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, []core.Action{core.ActionDown}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm, core.ActionResume}},
		{"p", runeKey('p'), []core.Action{core.ActionPause}},
		{"r", runeKey('r'), []core.Action{core.ActionRestart}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionBack}},
		{"b", runeKey('b'), []core.Action{core.ActionBack}},
		{"unbound", runeKey('z'), nil},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if km.MapKeyToFrame(tt.msg, &frame) {
				t.Fatalf("MapKeyToFrame(%q) reported quit", tt.msg.String())
			}
			for _, a := range tt.expected {
				if !frame.Has(a) {
					t.Errorf("MapKeyToFrame(%q) missing %v", tt.msg.String(), a)
				}
			}
			if got := len(frame.Actions); got != len(tt.expected) {
				t.Errorf("MapKeyToFrame(%q) set %d actions, expected %d", tt.msg.String(), got, len(tt.expected))
			}
		})
	}
}

func TestMapKeyLevelSelect(t *testing.T) {
	tests := []struct {
		key      rune
		expected int
	}{
		{'1', 1},
		{'5', 5},
		{'9', 9},
		{'0', 10},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		frame := core.NewInputFrame()
		km.MapKeyToFrame(runeKey(tt.key), &frame)
		if !frame.Has(core.ActionSelectLevel) || frame.Level != tt.expected {
			t.Errorf("key %q: level = %d, expected %d", tt.key, frame.Level, tt.expected)
		}
	}
}

func TestMapKeyQuit(t *testing.T) {
	km := NewKeyMapper()
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		frame := core.NewInputFrame()
		if !km.MapKeyToFrame(msg, &frame) {
			t.Errorf("MapKeyToFrame(%q) = false, expected quit", msg.String())
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
