package arena

import (
	"github.com/lixenwraith/typecast/hangul"
)

// Label mirrors a target's matching state for rendering
// It implements match.Display
type Label struct {
	word      string
	jamo      []rune
	progress  int
	completed bool
	typo      bool
}

func (l *Label) SetWord(text string) {
	l.word = text
	l.jamo = nil
	if hangul.ContainsHangul(text) {
		l.jamo = hangul.Split(text)
	}
	l.progress = 0
	l.completed = false
	l.typo = false
}

func (l *Label) UpdateProgress(n int) {
	l.progress = n
	if n > 0 {
		l.typo = false
	}
}

func (l *Label) ShowCompletion() { l.completed = true }
func (l *Label) ShowTypo()       { l.typo = true }

func (l *Label) Word() string    { return l.word }
func (l *Label) Progress() int   { return l.progress }
func (l *Label) Completed() bool { return l.completed }
func (l *Label) Typo() bool      { return l.typo }

// Typed returns the typed prefix as display text
func (l *Label) Typed() string {
	if l.jamo != nil {
		return hangul.Combine(l.jamo[:min(l.progress, len(l.jamo))])
	}
	return l.word[:min(l.progress, len(l.word))]
}

// Rest returns the untyped remainder of a Latin word, or the full word for Hangul
// Partially typed Hangul syllables cannot be split, so the caller draws Typed over Word
func (l *Label) Rest() string {
	if l.jamo != nil {
		return l.word
	}
	return l.word[min(l.progress, len(l.word)):]
}
