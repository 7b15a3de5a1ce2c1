package render

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs a callback after a delay
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func())
}

// LoopScheduler fires timers by posting back onto a Loop, so deferred
// steps run on the same goroutine as every other UI task.
type LoopScheduler struct {
	loop *Loop
}

// NewLoopScheduler creates a scheduler bound to loop
func NewLoopScheduler(loop *Loop) *LoopScheduler {
	return &LoopScheduler{loop: loop}
}

// AfterFunc implements Scheduler
func (s *LoopScheduler) AfterFunc(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		s.loop.Post(fn)
	})
}

// ManualScheduler is a virtual clock. Callbacks run only inside Advance or Flush,
// on the caller's goroutine, ordered by due time then by scheduling order.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []manualTask
}

type manualTask struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManualScheduler creates a scheduler at virtual time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler
func (s *ManualScheduler) AfterFunc(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.pending = append(s.pending, manualTask{at: s.now + delay, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by d, running every callback due on the way
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		task, ok := s.next(target)
		if !ok {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// Flush runs callbacks until nothing is pending, including ones scheduled meanwhile
func (s *ManualScheduler) Flush() {
	for {
		task, ok := s.next(-1)
		if !ok {
			return
		}
		task.fn()
	}
}

// Pending returns the number of callbacks not yet run
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Now returns the virtual time
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// next pops the earliest task due at or before limit (limit < 0: no limit)
func (s *ManualScheduler) next(limit time.Duration) (manualTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return manualTask{}, false
	}

	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})

	task := s.pending[0]
	if limit >= 0 && task.at > limit {
		return manualTask{}, false
	}

	s.pending = s.pending[1:]
	if task.at > s.now {
		s.now = task.at
	}
	return task, true
}
