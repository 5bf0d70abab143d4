package engine

import (
	"cmp"
	"slices"
	"time"
)

// TaskID identifies a scheduled task
type TaskID uint64

type task struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Scheduler runs deferred callbacks on the game's tick clock
// Waits are expressed as tasks resumed by Update; nothing runs on another goroutine
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	tasks  []task
}

// NewScheduler creates an empty scheduler at time 0
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once at least d of tick time has passed
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	s.nextID++
	s.tasks = append(s.tasks, task{id: s.nextID, due: s.now + max(d, 0), fn: fn})
	return s.nextID
}

// Cancel removes a pending task; returns false if it already ran or never existed
func (s *Scheduler) Cancel(id TaskID) bool {
	i := slices.IndexFunc(s.tasks, func(t task) bool { return t.id == id })
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}

// Update advances the clock by dt and runs every task that became due, earliest first
// Tasks scheduled by a running task wait for a later Update
func (s *Scheduler) Update(dt time.Duration) {
	s.now += dt

	var due []task
	s.tasks = slices.DeleteFunc(s.tasks, func(t task) bool {
		if t.due <= s.now {
			due = append(due, t)
			return true
		}
		return false
	})

	slices.SortFunc(due, func(a, b task) int {
		return cmp.Or(cmp.Compare(a.due, b.due), cmp.Compare(a.id, b.id))
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of tasks waiting to run
func (s *Scheduler) Pending() int { return len(s.tasks) }

// Elapsed returns total tick time seen by the scheduler
func (s *Scheduler) Elapsed() time.Duration { return s.now }
