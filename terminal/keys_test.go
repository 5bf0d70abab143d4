package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Input
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), Input{Action: ActionSymbol, Rune: 'a'}},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), Input{Action: ActionSymbol, Rune: 'R', Shift: true}},
		{"jamo", tcell.NewEventKey(tcell.KeyRune, 'ㄱ', tcell.ModNone), Input{Action: ActionSymbol, Rune: 'ㄱ'}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Input{}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), Input{Action: ActionBackspace}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Input{Action: ActionBackspace}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Input{Action: ActionPause}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Input{Action: ActionQuit}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Input{Action: ActionToggleScript}},
		{"f2", tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone), Input{Action: ActionToggleScript}},
		{"f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), Input{Action: ActionToggleMute}},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.ev); got != tt.want {
				t.Errorf("Translate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestArrowFor(t *testing.T) {
	tests := map[float64]rune{0: '→', 90: '↑', 180: '←', 270: '↓', 359: '→', 44: '↗', -90: '↓'}
	for deg, want := range tests {
		if got := arrowFor(deg); got != want {
			t.Errorf("arrowFor(%v) = %q, want %q", deg, got, want)
		}
	}
}
