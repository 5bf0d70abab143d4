// Package match holds the per-target typing automaton shared by Latin and Hangul words
package match

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/lixenwraith/typecast/hangul"
	"github.com/lixenwraith/typecast/parameter"
)

// Symbol is the atomic unit being matched: a lowercase Latin letter or one Hangul jamo
type Symbol = rune

// Script selects how a word is segmented into symbols
type Script uint8

const (
	ScriptLatin Script = iota
	ScriptHangul
)

func (s Script) String() string {
	switch s {
	case ScriptLatin:
		return "latin"
	case ScriptHangul:
		return "hangul"
	default:
		return fmt.Sprintf("Script(%d)", s)
	}
}

// ParseScript resolves a script name, accepting language aliases
func ParseScript(name string) (Script, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin", "english", "en":
		return ScriptLatin, nil
	case "hangul", "korean", "ko":
		return ScriptHangul, nil
	}
	return ScriptLatin, fmt.Errorf("unknown script %q", name)
}

// UnmarshalText lets Script be used directly as a config field
func (s *Script) UnmarshalText(text []byte) error {
	parsed, err := ParseScript(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Fold canonicalizes an input symbol for comparison
// Latin letters fold to lowercase; jamo are unchanged
func Fold(r rune) Symbol {
	return unicode.ToLower(r)
}

// Word is display text paired with the symbol sequence typed to complete it
type Word struct {
	Text    string
	Symbols []Symbol
	Script  Script
}

// Len returns the number of symbols
func (w Word) Len() int {
	return len(w.Symbols)
}

// NewWord segments text for the given script
// Text with no typeable symbols is replaced by the script's placeholder word
func NewWord(text string, script Script) Word {
	w := segment(text, script)
	if len(w.Symbols) == 0 {
		w = segment(Placeholder(script), script)
	}
	return w
}

// Placeholder returns the fallback word for a script
func Placeholder(script Script) string {
	if script == ScriptHangul {
		return parameter.PlaceholderWordHangul
	}
	return parameter.PlaceholderWordLatin
}

func segment(text string, script Script) Word {
	switch script {
	case ScriptHangul:
		text = norm.NFC.String(strings.TrimSpace(text))
		return Word{Text: text, Symbols: hangul.Split(text), Script: script}

	default:
		folded := cases.Fold().String(strings.TrimSpace(text))
		symbols := make([]Symbol, 0, len(folded))
		for _, r := range folded {
			if unicode.IsLetter(r) {
				symbols = append(symbols, r)
			}
		}
		return Word{Text: string(symbols), Symbols: symbols, Script: ScriptLatin}
	}
}
