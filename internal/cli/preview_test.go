package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridaxis/pkg/axis"
)

func previewFixture() previewModel {
	l := axis.NewCollapsing(0)
	l.AddConstraints(0, 1, 10, 40, 20)
	l.AddConstraints(1, 1, 10, 40, 20)
	return newPreviewModel("pair", l, 5)
}

func press(m previewModel, keys ...tea.KeyMsg) previewModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(previewModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewStartsAtPreferred(t *testing.T) {
	m := previewFixture()
	if m.size != 40 {
		t.Errorf("size = %d, want preferred 40", m.size)
	}
	if m.err != nil || m.sol.Size != 40 {
		t.Errorf("solution = %+v, err %v", m.sol, m.err)
	}
}

func TestPreviewResizeKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want int
	}{
		{"grow", []tea.KeyMsg{{Type: tea.KeyRight}}, 45},
		{"shrink", []tea.KeyMsg{{Type: tea.KeyLeft}}, 35},
		{"clamped at min", []tea.KeyMsg{{Type: tea.KeyShiftLeft}}, 20},
		{"clamped at max", []tea.KeyMsg{{Type: tea.KeyShiftRight}, {Type: tea.KeyShiftRight}}, 80},
		{"min then preferred", []tea.KeyMsg{runes("m"), runes("p")}, 40},
		{"max", []tea.KeyMsg{runes("M")}, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(previewFixture(), tt.keys...)
			if m.size != tt.want {
				t.Errorf("size = %d, want %d", m.size, tt.want)
			}
			if m.sol.Size != tt.want {
				t.Errorf("solved size = %d, want %d", m.sol.Size, tt.want)
			}
		})
	}
}

func TestPreviewQuit(t *testing.T) {
	_, cmd := previewFixture().Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m := press(previewFixture(), runes("M"))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 42, Height: 20})
	view := next.(previewModel).View()
	for _, want := range []string{"pair", "size 80", "max 80", "Element"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
