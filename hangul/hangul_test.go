package hangul

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestSplitSimpleSyllables(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"가", "ㄱㅏ"},
		{"각", "ㄱㅏㄱ"},
		{"대강", "ㄷㅐㄱㅏㅇ"},
		{"동해", "ㄷㅗㅇㅎㅐ"},
		{"닭", "ㄷㅏㄺ"},
		{"빵", "ㅃㅏㅇ"},
	}

	for _, tt := range tests {
		got := string(Split(tt.word))
		if got != tt.want {
			t.Errorf("Split(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSplitExpandsCompoundVowels(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"와", "ㅇㅗㅏ"},
		{"왜", "ㅇㅗㅐ"},
		{"외", "ㅇㅗㅣ"},
		{"워", "ㅇㅜㅓ"},
		{"웨", "ㅇㅜㅔ"},
		{"위", "ㅇㅜㅣ"},
		{"의", "ㅇㅡㅣ"},
		{"돼지", "ㄷㅗㅐㅈㅣ"},
		{"우와", "ㅇㅜㅇㅗㅏ"},
	}

	for _, tt := range tests {
		got := string(Split(tt.word))
		if got != tt.want {
			t.Errorf("Split(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSplitDropsNonHangul(t *testing.T) {
	got := string(Split("a가 b!나"))
	if got != "ㄱㅏㄴㅏ" {
		t.Errorf("Expected non-Hangul to be dropped, got %q", got)
	}

	if len(Split("hello")) != 0 {
		t.Error("Expected empty split for Latin text")
	}
}

func TestSplitAcceptsDecomposedInput(t *testing.T) {
	decomposed := norm.NFD.String("한글")
	got := string(Split(decomposed))
	if got != "ㅎㅏㄴㄱㅡㄹ" {
		t.Errorf("Expected NFD input to split like NFC, got %q", got)
	}
}

func TestSplitLengthCountsDiphthongsAsTwo(t *testing.T) {
	// 사과: ㅅㅏ + ㄱㅗㅏ = 5, 원숭이: ㅇㅜㅓㄴ + ㅅㅜㅇ + ㅇㅣ = 9
	tests := map[string]int{
		"사과":  5,
		"원숭이": 9,
		"의자":  5,
		"학교":  5,
	}
	for word, want := range tests {
		if got := len(Split(word)); got != want {
			t.Errorf("len(Split(%q)) = %d, want %d", word, got, want)
		}
	}
}

func TestCombineTwoSyllableShapes(t *testing.T) {
	tests := []struct {
		jamo string
		want string
	}{
		{"ㄷㅐㄱㅏㅇ", "대강"}, // second syllable cho+jung+jong
		{"ㅇㅜㅇㅗㅏ", "우와"}, // second syllable diphthong
		{"ㄷㅗㅐㅈㅣ", "돼지"}, // first syllable diphthong
		{"ㄷㅗㅇㅎㅐ", "동해"}, // first syllable final consonant
	}

	for _, tt := range tests {
		got := Combine([]rune(tt.jamo))
		if got != tt.want {
			t.Errorf("Combine(%q) = %q, want %q", tt.jamo, got, tt.want)
		}
	}
}

func TestCombineRoundTrip(t *testing.T) {
	words := []string{
		"마법", "드래곤", "원숭이", "괜찮아", "의사", "닭고기", "뛰어라", "쌍둥이", "훼손", "외계인",
	}
	for _, w := range words {
		if got := Combine(Split(w)); got != w {
			t.Errorf("Combine(Split(%q)) = %q", w, got)
		}
	}
}

func TestCombinePartialPrefix(t *testing.T) {
	jamo := Split("마법")

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "ㅁ"},
		{2, "마"},
		{3, "맙"}, // ㅂ is provisionally a final until a vowel arrives
		{4, "마버"},
		{5, "마법"},
	}

	for _, tt := range tests {
		got := Combine(jamo[:tt.n])
		if got != tt.want {
			t.Errorf("Combine(prefix %d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestComposeArithmetic(t *testing.T) {
	if got := Compose(0, 0, 0); got != '가' {
		t.Errorf("Expected 가, got %q", got)
	}
	// 힣 is the last syllable: cho 18, jung 20, jong 27
	if got := Compose(18, 20, 27); got != '힣' {
		t.Errorf("Expected 힣, got %q", got)
	}
}

func TestPredicates(t *testing.T) {
	if !IsSyllable('한') || IsSyllable('ㅎ') {
		t.Error("IsSyllable misclassified")
	}
	if !IsJamo('ㅎ') || IsJamo('a') {
		t.Error("IsJamo misclassified")
	}
	if !IsVowel('ㅏ') || IsVowel('ㄱ') {
		t.Error("IsVowel misclassified")
	}
	if !IsConsonant('ㄲ') || IsConsonant('ㄳ') {
		t.Error("IsConsonant misclassified")
	}
	if !ContainsHangul("abc한") || ContainsHangul("abc") {
		t.Error("ContainsHangul misclassified")
	}
}
