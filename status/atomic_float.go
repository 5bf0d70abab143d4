package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat provides atomic float64 operations using bit conversion
// Zero value is ready to use
type AtomicFloat struct {
	bits atomic.Uint64
}

// Store sets the value
func (f *AtomicFloat) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Load returns the value
func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Ratio stores num/den, or 1 when den is zero
func (f *AtomicFloat) Ratio(num, den int64) {
	if den == 0 {
		f.Store(1)
		return
	}
	f.Store(float64(num) / float64(den))
}
