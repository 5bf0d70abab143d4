// Package words supplies target words by script and difficulty tier
//
// Lists are JSON arrays of strings, or objects with a "words" array.
// Embedded English and Korean lists are used when no file is configured.
//
// Classification:
//   - Words are trimmed, lowercased (Latin) or NFC normalized (Hangul)
//   - Words shorter than 2 graphemes, or with characters not typeable in their script, are dropped
//   - Easy: at most 4 graphemes, Medium: at most 6, Hard: the rest
package words

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/lixenwraith/typecast/hangul"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
)

//go:embed english.json
var embeddedEnglish []byte

//go:embed korean.json
var embeddedKorean []byte

var (
	ErrInvalidJSON = errors.New("invalid json")
	ErrNotAList    = errors.New("expected an array of words")
	ErrEmptyList   = errors.New("no usable words")
)

// Tier is a difficulty class derived from word length
type Tier uint8

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	tierCount
)

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	default:
		return "hard"
	}
}

// List is a classified, deduplicated word list for one script
type List struct {
	script match.Script
	all    []string
	tiers  [tierCount][]string
}

// NewList normalizes and classifies raw words, dropping unusable ones
func NewList(script match.Script, raw []string) *List {
	l := &List{script: script}
	seen := make(map[string]struct{}, len(raw))
	lower := cases.Lower(language.Und)

	for _, w := range raw {
		w = strings.TrimSpace(w)
		if script == match.ScriptHangul {
			w = norm.NFC.String(w)
		} else {
			w = lower.String(w)
		}
		if !fitsScript(w, script) {
			continue
		}
		n := uniseg.GraphemeClusterCount(w)
		if n < parameter.WordMinGraphemes {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}

		l.all = append(l.all, w)
		l.tiers[classify(n)] = append(l.tiers[classify(n)], w)
	}
	return l
}

func fitsScript(w string, script match.Script) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		switch {
		case script == match.ScriptHangul && hangul.IsSyllable(r):
		case script == match.ScriptLatin && r >= 'a' && r <= 'z':
		default:
			return false
		}
	}
	return true
}

func classify(graphemes int) Tier {
	switch {
	case graphemes <= parameter.WordEasyMaxLength:
		return TierEasy
	case graphemes <= parameter.WordMediumMaxLength:
		return TierMedium
	default:
		return TierHard
	}
}

// Script returns the list's script
func (l *List) Script() match.Script { return l.script }

// Len returns the number of usable words
func (l *List) Len() int { return len(l.all) }

// Tier returns the words of one tier
func (l *List) Tier(t Tier) []string { return l.tiers[t] }

// ParseJSON extracts word strings from a JSON array, or from the "words" array of an object
// Non-string elements are ignored
func ParseJSON(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	arr := gjson.ParseBytes(data)
	if arr.IsObject() {
		arr = arr.Get("words")
	}
	if !arr.IsArray() {
		return nil, ErrNotAList
	}

	var out []string
	arr.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
		return true
	})
	return out, nil
}

// LoadFile reads and classifies a JSON word list
func LoadFile(path string, script match.Script) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	raw, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse word list %s: %w", path, err)
	}
	l := NewList(script, raw)
	if l.Len() == 0 {
		return nil, fmt.Errorf("word list %s: %w", path, ErrEmptyList)
	}
	return l, nil
}

// Embedded returns the built-in list for a script
func Embedded(script match.Script) *List {
	data := embeddedEnglish
	if script == match.ScriptHangul {
		data = embeddedKorean
	}
	raw, err := ParseJSON(data)
	if err != nil {
		panic(fmt.Sprintf("embedded %s word list: %v", script, err))
	}
	return NewList(script, raw)
}
