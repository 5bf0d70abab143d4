package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelRunes bounds stored label length
const MaxLabelRunes = 20

// AtomicString provides atomic string access with a bounded length
// Zero value is ready to use
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncating on a rune boundary
func (s *AtomicString) Store(val string) {
	if utf8.RuneCountInString(val) > MaxLabelRunes {
		runes := []rune(val)
		val = string(runes[:MaxLabelRunes])
	}
	s.ptr.Store(&val)
}

// Load returns the current value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
