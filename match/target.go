package match

import "github.com/lixenwraith/typecast/hangul"

// TargetID identifies the entity that owns a word
type TargetID uint64

// Display observes a target's matching state
// Calls are notifications only; nothing returned feeds back into matching
type Display interface {
	SetWord(text string)
	UpdateProgress(n int)
	ShowCompletion()
	ShowTypo()
}

type nopDisplay struct{}

func (nopDisplay) SetWord(string)      {}
func (nopDisplay) UpdateProgress(int) {}
func (nopDisplay) ShowCompletion()    {}
func (nopDisplay) ShowTypo()          {}

// Target tracks typing progress for one word
//
// States:
//   - Idle: progress == 0
//   - InProgress: 0 < progress < len
//   - Completed: progress == len, then marked by MarkCompleted
//
// Progress never leaves [0, len]; a completed target accepts nothing until Reassign
type Target struct {
	id        TargetID
	word      Word
	progress  int
	completed bool
	display   Display
}

// NewTarget creates a target at progress 0 and publishes its word to display
// A nil display is replaced with a no-op
func NewTarget(id TargetID, word Word, display Display) *Target {
	if display == nil {
		display = nopDisplay{}
	}
	t := &Target{
		id:      id,
		word:    word,
		display: display,
	}
	display.SetWord(word.Text)
	display.UpdateProgress(0)
	return t
}

// ID returns the owning entity id
func (t *Target) ID() TargetID { return t.id }

// Word returns the current word
func (t *Target) Word() Word { return t.word }

// Progress returns the number of symbols typed so far
func (t *Target) Progress() int { return t.progress }

// Len returns the number of symbols in the word
func (t *Target) Len() int { return len(t.word.Symbols) }

// Completed reports whether the completion has already been handled
func (t *Target) Completed() bool { return t.completed }

// Expected returns the next symbol to type, false when nothing is expected
func (t *Target) Expected() (Symbol, bool) {
	if t.completed || t.progress >= len(t.word.Symbols) {
		return 0, false
	}
	return t.word.Symbols[t.progress], true
}

// CanAccept reports whether s continues the word at the current progress
func (t *Target) CanAccept(s Symbol) bool {
	expected, ok := t.Expected()
	return ok && expected == Fold(s)
}

// Accept advances progress by one if s is acceptable
// Returns false without side effects otherwise
func (t *Target) Accept(s Symbol) bool {
	if !t.CanAccept(s) {
		return false
	}
	t.progress++
	t.display.UpdateProgress(t.progress)
	return true
}

// Backspace removes one typed symbol; no-op at progress 0
func (t *Target) Backspace() {
	if t.progress == 0 {
		return
	}
	t.progress--
	t.display.UpdateProgress(t.progress)
}

// TriggerIndividualTypo resets progress to 0 regardless of its current value
func (t *Target) TriggerIndividualTypo() {
	t.progress = 0
	t.display.UpdateProgress(0)
}

// ShowTypo flags the target as part of a global typo
func (t *Target) ShowTypo() {
	t.display.ShowTypo()
}

// IsComplete reports a word that reached full length this pass and is not yet handled
func (t *Target) IsComplete() bool {
	return !t.completed && len(t.word.Symbols) > 0 && t.progress == len(t.word.Symbols)
}

// MarkCompleted latches completion so the target is reported once
func (t *Target) MarkCompleted() {
	if t.completed {
		return
	}
	t.completed = true
	t.display.ShowCompletion()
}

// Reassign replaces the word and returns the target to Idle
func (t *Target) Reassign(word Word) {
	t.word = word
	t.progress = 0
	t.completed = false
	t.display.SetWord(word.Text)
	t.display.UpdateProgress(0)
}

// TypedText returns the display form of the typed prefix
// Hangul prefixes are recomposed into syllables
func (t *Target) TypedText() string {
	prefix := t.word.Symbols[:t.progress]
	if t.word.Script == ScriptHangul {
		return hangul.Combine(prefix)
	}
	return string(prefix)
}
