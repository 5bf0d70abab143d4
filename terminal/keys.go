package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Action is what a key press asks the game to do
type Action uint8

const (
	ActionNone Action = iota
	ActionSymbol
	ActionBackspace
	ActionPause
	ActionQuit
	ActionToggleScript
	ActionToggleMute
)

// Input is a translated key press
// For ActionSymbol, Shift reports an uppercase letter so the Hangul layout can pick double consonants
type Input struct {
	Action Action
	Rune   rune
	Shift  bool
}

// Translate maps a tcell key event to game input
func Translate(ev *tcell.EventKey) Input {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return Input{}
		}
		return Input{
			Action: ActionSymbol,
			Rune:   r,
			Shift:  unicode.IsUpper(r) || ev.Modifiers()&tcell.ModShift != 0,
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Input{Action: ActionBackspace}
	case tcell.KeyEscape:
		return Input{Action: ActionPause}
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return Input{Action: ActionQuit}
	case tcell.KeyTab, tcell.KeyF2:
		return Input{Action: ActionToggleScript}
	case tcell.KeyF3:
		return Input{Action: ActionToggleMute}
	}
	return Input{}
}
