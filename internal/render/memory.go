package render

import "sync"

// MemoryEngine is an in-process chart engine. Like a real engine it does not
// stop a caller from initializing a second instance on a bound target, which
// makes leaked instances observable through Live.
type MemoryEngine struct {
	mu        sync.Mutex
	nextID    int
	bound     map[string]*MemoryChart
	instances []*MemoryChart
}

// MemoryChart is one instance created by a MemoryEngine
type MemoryChart struct {
	ID     int
	Target string

	engine   *MemoryEngine
	option   any
	history  []any
	disposed bool
	resizes  int
}

// NewMemoryEngine creates an empty engine
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{bound: make(map[string]*MemoryChart)}
}

// Init implements Engine
func (e *MemoryEngine) Init(target string) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	c := &MemoryChart{ID: e.nextID, Target: target, engine: e}
	e.bound[target] = c
	e.instances = append(e.instances, c)
	return c, nil
}

// InstanceByTarget implements Engine
func (e *MemoryEngine) InstanceByTarget(target string) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c, ok := e.bound[target]; ok {
		return c
	}
	return nil
}

// Chart returns the instance currently bound to target, or nil
func (e *MemoryEngine) Chart(target string) *MemoryChart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bound[target]
}

// Live counts undisposed instances created for target
func (e *MemoryEngine) Live(target string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, c := range e.instances {
		if c.Target == target && !c.disposed {
			n++
		}
	}
	return n
}

// Created counts every instance ever created for target
func (e *MemoryEngine) Created(target string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, c := range e.instances {
		if c.Target == target {
			n++
		}
	}
	return n
}

// Targets returns the targets with a bound instance
func (e *MemoryEngine) Targets() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	targets := make([]string, 0, len(e.bound))
	for t := range e.bound {
		targets = append(targets, t)
	}
	return targets
}

// SetOption implements Handle
func (c *MemoryChart) SetOption(option any, replace bool) error {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if replace || c.option == nil {
		c.option = option
	}
	c.history = append(c.history, option)
	return nil
}

// Dispose implements Handle
func (c *MemoryChart) Dispose() {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()

	c.disposed = true
	if c.engine.bound[c.Target] == c {
		delete(c.engine.bound, c.Target)
	}
}

// Resize implements Handle
func (c *MemoryChart) Resize() {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()

	if !c.disposed {
		c.resizes++
	}
}

// Option returns the option currently drawn
func (c *MemoryChart) Option() any {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.option
}

// Disposed reports whether the instance was disposed
func (c *MemoryChart) Disposed() bool {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.disposed
}

// Resizes returns how many times Resize ran on a live instance
func (c *MemoryChart) Resizes() int {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return c.resizes
}

// Draws returns how many options were handed to this instance
func (c *MemoryChart) Draws() int {
	c.engine.mu.Lock()
	defer c.engine.mu.Unlock()
	return len(c.history)
}
