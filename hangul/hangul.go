// Package hangul segments Hangul syllables into typeable jamo and composes
// jamo prefixes back into syllables for display
package hangul

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Syllable block arithmetic
const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	jungCount     = 21
	jongCount     = 28
	choStride     = jungCount * jongCount // 588
	compatJamoLow = 0x3131
	compatJamoHi  = 0x318E
)

// Initial consonants in syllable index order
var choseong = [19]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Medial vowels in syllable index order
var jungseong = [jungCount]rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
	'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// Final consonants in syllable index order, index 0 is "no final"
var jongseong = [jongCount]rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
	'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// vowelPair is the two simple vowels typed for one compound vowel
type vowelPair [2]rune

// Compound vowels are typed as two keystrokes on a 2-set keyboard
var compoundVowels = map[rune]vowelPair{
	'ㅘ': {'ㅗ', 'ㅏ'},
	'ㅙ': {'ㅗ', 'ㅐ'},
	'ㅚ': {'ㅗ', 'ㅣ'},
	'ㅝ': {'ㅜ', 'ㅓ'},
	'ㅞ': {'ㅜ', 'ㅔ'},
	'ㅟ': {'ㅜ', 'ㅣ'},
	'ㅢ': {'ㅡ', 'ㅣ'},
}

// fusedVowels is the inverse of compoundVowels
var fusedVowels = func() map[vowelPair]rune {
	m := make(map[vowelPair]rune, len(compoundVowels))
	for compound, pair := range compoundVowels {
		m[pair] = compound
	}
	return m
}()

var (
	choIndex  = indexOf(choseong[:])
	jungIndex = indexOf(jungseong[:])
	jongIndex = indexOf(jongseong[:])
)

// indexOf maps each non-zero rune of list to its position
func indexOf(list []rune) map[rune]int {
	m := make(map[rune]int, len(list))
	for i, r := range list {
		if r != 0 {
			m[r] = i
		}
	}
	return m
}

// IsSyllable reports whether r is a precomposed Hangul syllable
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// IsJamo reports whether r is a Hangul compatibility jamo
func IsJamo(r rune) bool {
	return r >= compatJamoLow && r <= compatJamoHi
}

// IsVowel reports whether r is a medial vowel jamo
func IsVowel(r rune) bool {
	_, ok := jungIndex[r]
	return ok
}

// IsConsonant reports whether r can start a syllable
func IsConsonant(r rune) bool {
	_, ok := choIndex[r]
	return ok
}

// ContainsHangul reports whether s holds any syllable or jamo
func ContainsHangul(s string) bool {
	for _, r := range s {
		if IsSyllable(r) || IsJamo(r) || (r >= 0x1100 && r <= 0x11FF) {
			return true
		}
	}
	return false
}

// Split decomposes every syllable of word into the jamo typed to produce it
// Compound vowels expand into two simple vowels; non-Hangul characters are dropped
// Input is NFC-normalized first so conjoining-jamo sequences are accepted
func Split(word string) []rune {
	word = norm.NFC.String(word)
	out := make([]rune, 0, len(word))

	for _, r := range word {
		if !IsSyllable(r) {
			continue
		}
		n := int(r - syllableBase)
		cho := n / choStride
		jung := (n % choStride) / jongCount
		jong := n % jongCount

		out = append(out, choseong[cho])

		vowel := jungseong[jung]
		if pair, ok := compoundVowels[vowel]; ok {
			out = append(out, pair[0], pair[1])
		} else {
			out = append(out, vowel)
		}

		if jong != 0 {
			out = append(out, jongseong[jong])
		}
	}
	return out
}

// Compose returns the syllable for the given slot indices
func Compose(cho, jung, jong int) rune {
	return rune(cho*jungCount*jongCount + jung*jongCount + jong + syllableBase)
}

// Combine reassembles a jamo sequence produced by Split (or any prefix of it)
// into display text
// Two consecutive vowels are re-fused into their compound vowel
// A consonant after a vowel is a final unless a vowel follows it
// Incomplete trailing jamo are emitted unchanged
func Combine(jamo []rune) string {
	var sb strings.Builder
	n := len(jamo)

	for i := 0; i < n; {
		cho, ok := choIndex[jamo[i]]
		if !ok || i+1 >= n || !IsVowel(jamo[i+1]) {
			sb.WriteRune(jamo[i])
			i++
			continue
		}

		vowel := jamo[i+1]
		j := i + 2
		if j < n && IsVowel(jamo[j]) {
			if fused, ok := fusedVowels[vowelPair{vowel, jamo[j]}]; ok {
				vowel = fused
				j++
			}
		}

		jong := 0
		if j < n {
			if idx, ok := jongIndex[jamo[j]]; ok && (j+1 >= n || !IsVowel(jamo[j+1])) {
				jong = idx
				j++
			}
		}

		sb.WriteRune(Compose(cho, jungIndex[vowel], jong))
		i = j
	}
	return sb.String()
}
