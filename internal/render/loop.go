package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/eventlens/pkg/logger"
)

// Loop runs posted tasks one at a time on a single goroutine.
// Every UI handler, load-complete callback and deferred step of a session runs here.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	logger *logger.Logger
}

// NewLoop creates a loop; call Run to start it
func NewLoop(log *logger.Logger) *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: log,
	}
}

// Post queues fn. It never blocks and returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run executes tasks until ctx is done. Tasks still queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.run(fn)
		}

		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// run executes one task; a panicking handler is logged and the loop keeps going
func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.WithField("panic", fmt.Sprint(r)).Error("Loop task panicked")
		}
	}()
	fn()
}
