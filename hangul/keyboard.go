package hangul

import "unicode"

// keyJamo is one key of the 2-set layout
// shifted is zero when shift produces the same jamo
type keyJamo struct {
	plain   rune
	shifted rune
}

// Dubeolsik layout keyed by the Latin key label
var twoSetLayout = map[rune]keyJamo{
	// Consonants
	'q': {'ㅂ', 'ㅃ'},
	'w': {'ㅈ', 'ㅉ'},
	'e': {'ㄷ', 'ㄸ'},
	'r': {'ㄱ', 'ㄲ'},
	't': {'ㅅ', 'ㅆ'},
	'a': {'ㅁ', 0},
	's': {'ㄴ', 0},
	'd': {'ㅇ', 0},
	'f': {'ㄹ', 0},
	'g': {'ㅎ', 0},
	'z': {'ㅋ', 0},
	'x': {'ㅌ', 0},
	'c': {'ㅊ', 0},
	'v': {'ㅍ', 0},

	// Vowels
	'y': {'ㅛ', 0},
	'u': {'ㅕ', 0},
	'i': {'ㅑ', 0},
	'o': {'ㅐ', 'ㅒ'},
	'p': {'ㅔ', 'ㅖ'},
	'h': {'ㅗ', 0},
	'j': {'ㅓ', 0},
	'k': {'ㅏ', 0},
	'l': {'ㅣ', 0},
	'b': {'ㅠ', 0},
	'n': {'ㅜ', 0},
	'm': {'ㅡ', 0},
}

// KeyToJamo maps a physical key label and shift state to the jamo it types
// Labels are case-insensitive; returns false for keys outside the layout
func KeyToJamo(key rune, shift bool) (rune, bool) {
	entry, ok := twoSetLayout[unicode.ToLower(key)]
	if !ok {
		return 0, false
	}
	if shift && entry.shifted != 0 {
		return entry.shifted, true
	}
	return entry.plain, true
}
