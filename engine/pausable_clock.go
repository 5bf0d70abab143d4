package engine

import (
	"sync"
	"time"
)

// PausableClock measures game time on top of a TimeSource, frozen while paused
// The frame loop derives each tick's dt from Delta, so a paused game ticks with dt 0
type PausableClock struct {
	mu sync.Mutex

	source      TimeSource
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
	lastFrame   time.Time
}

// NewPausableClock creates a running clock over source; nil uses the system clock
func NewPausableClock(source TimeSource) *PausableClock {
	if source == nil {
		source = NewTimeProvider()
	}
	pc := &PausableClock{source: source}
	pc.lastFrame = pc.gameTime(source.Now())
	return pc
}

func (pc *PausableClock) gameTime(real time.Time) time.Time {
	if pc.paused {
		real = pc.pauseStart
	}
	return real.Add(-pc.totalPaused)
}

// Now returns current game time
func (pc *PausableClock) Now() time.Time {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.gameTime(pc.source.Now())
}

// Delta returns game time elapsed since the previous Delta call
func (pc *PausableClock) Delta() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.gameTime(pc.source.Now())
	dt := now.Sub(pc.lastFrame)
	pc.lastFrame = now
	return max(dt, 0)
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		pc.paused = true
		pc.pauseStart = pc.source.Now()
	}
}

// Resume continues game time advancement, discarding the paused interval
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		pc.totalPaused += pc.source.Now().Sub(pc.pauseStart)
		pc.paused = false
	}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// TotalPaused returns cumulative pause time, including a pause in progress
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	total := pc.totalPaused
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
