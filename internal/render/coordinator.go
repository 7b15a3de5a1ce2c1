// Package render coordinates chart drawing for one dashboard session.
//
// Two guarantees hold for every target:
//   - a deferred render step runs only while its task token is still current,
//     so a slow render can never overwrite a newer selection;
//   - the instance bound to a target is disposed synchronously before a new
//     one is created, so at most one instance is ever bound to it.
package render

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

// TaskToken identifies one render task. Only the most recently issued token is current.
type TaskToken uint64

// Coordinator owns the task counter and the dispose-before-redraw rule.
// ⭐ SSOT: 차트 init/dispose는 Coordinator를 통해서만 호출
type Coordinator struct {
	engine  Engine
	sched   Scheduler
	current atomic.Uint64
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewCoordinator creates a coordinator. m may be nil.
func NewCoordinator(engine Engine, sched Scheduler, log *logger.Logger, m *metrics.Metrics) *Coordinator {
	return &Coordinator{
		engine:  engine,
		sched:   sched,
		logger:  log,
		metrics: m,
	}
}

// BeginRenderTask issues a new token and makes it the current one
func (c *Coordinator) BeginRenderTask() TaskToken {
	return TaskToken(c.current.Add(1))
}

// IsCurrent reports whether token is the most recently issued one
func (c *Coordinator) IsCurrent(token TaskToken) bool {
	return uint64(token) == c.current.Load()
}

// Dispose disposes the instance bound to target. Unbound targets are a no-op.
// It reports whether an instance was disposed.
func (c *Coordinator) Dispose(target string) bool {
	if c.engine == nil {
		return false
	}

	h := c.engine.InstanceByTarget(target)
	if h == nil {
		return false
	}

	h.Dispose()
	if c.metrics != nil {
		c.metrics.ChartDisposals.WithLabelValues(target).Inc()
	}
	return true
}

// Render disposes whatever is bound to target, creates a fresh instance and
// draws the option built by configFn with replace semantics.
func (c *Coordinator) Render(target string, configFn func() any) (Handle, error) {
	if c.engine == nil {
		return nil, ErrNoEngine
	}

	c.Dispose(target)

	h, err := c.engine.Init(target)
	if err != nil {
		return nil, fmt.Errorf("init chart %s: %w", target, err)
	}

	if err := h.SetOption(configFn(), true); err != nil {
		return nil, fmt.Errorf("set option %s: %w", target, err)
	}

	if c.metrics != nil {
		c.metrics.Renders.WithLabelValues(target).Inc()
	}

	c.logger.WithField("target", target).Debug("Chart rendered")
	return h, nil
}

// Defer runs fn after delay if token is still current at that moment.
// A superseded step is dropped without touching any view.
func (c *Coordinator) Defer(token TaskToken, step string, delay time.Duration, fn func()) {
	c.sched.AfterFunc(delay, func() {
		if !c.IsCurrent(token) {
			c.logger.WithFields(map[string]interface{}{
				"step":    step,
				"token":   uint64(token),
				"current": c.current.Load(),
			}).Debug("Stale render step dropped")

			if c.metrics != nil {
				c.metrics.StaleStepsDrop.WithLabelValues(step).Inc()
			}
			return
		}
		fn()
	})
}
