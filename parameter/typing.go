package parameter

import "time"

// Global Typo Rule
const (
	// TypingSignificantProgress is the minimum prior progress for a rejected
	// target to count toward a global typo; first-letter mis-picks are free
	TypingSignificantProgress = 2

	// TypingTypoEffectDuration is how long the global typo flag stays raised
	TypingTypoEffectDuration = 500 * time.Millisecond
)

// Word Lifecycle
const (
	// TypingReassignDelay is the display delay between completion and a fresh word
	TypingReassignDelay = 500 * time.Millisecond

	// TypingAllowBackspace enables backspace broadcast by default
	TypingAllowBackspace = true
)

// Placeholder words used when the word supply returns nothing usable
const (
	PlaceholderWordLatin  = "word"
	PlaceholderWordHangul = "단어"
)

// Word Difficulty Tiers (measured in symbols)
const (
	// WordEasyMaxLength is the longest word classified as easy
	WordEasyMaxLength = 4

	// WordMediumMaxLength is the longest word classified as medium
	WordMediumMaxLength = 6

	// WordMinGraphemes drops words too short to be worth typing
	WordMinGraphemes = 2

	WordEasyChance   = 0.5
	WordMediumChance = 0.3
	WordHardChance   = 0.2
)
