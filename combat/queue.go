package combat

import "github.com/lixenwraith/typecast/match"

// Queue is a fixed-capacity FIFO ring of target ids
type Queue struct {
	buf  []match.TargetID
	head int
	size int
}

// NewQueue creates a queue holding at most capacity ids; capacity below 1 is raised to 1
func NewQueue(capacity int) *Queue {
	return &Queue{buf: make([]match.TargetID, max(capacity, 1))}
}

// Push appends id, returning false when the queue is full
func (q *Queue) Push(id match.TargetID) bool {
	if q.size == len(q.buf) {
		return false
	}
	q.buf[(q.head+q.size)%len(q.buf)] = id
	q.size++
	return true
}

// Pop removes the oldest id
func (q *Queue) Pop() (match.TargetID, bool) {
	if q.size == 0 {
		return 0, false
	}
	id := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return id, true
}

func (q *Queue) Len() int { return q.size }
func (q *Queue) Cap() int { return len(q.buf) }

// Clear drops all queued ids
func (q *Queue) Clear() {
	q.head, q.size = 0, 0
}
