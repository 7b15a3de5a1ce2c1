package render

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

func newTestCoordinator() (*Coordinator, *MemoryEngine, *ManualScheduler, *metrics.Metrics) {
	engine := NewMemoryEngine()
	sched := NewManualScheduler()
	m := metrics.New("")
	return NewCoordinator(engine, sched, logger.Nop(), m), engine, sched, m
}

func TestCoordinator_OnlyLatestTokenIsCurrent(t *testing.T) {
	c, _, _, _ := newTestCoordinator()
	rng := rand.New(rand.NewSource(7))

	var issued []TaskToken
	for i := 0; i < 200; i++ {
		// interleave queries between issues
		for q := rng.Intn(3); q > 0; q-- {
			if len(issued) > 0 {
				old := issued[rng.Intn(len(issued))]
				assert.Equal(t, old == issued[len(issued)-1], c.IsCurrent(old))
			}
		}

		issued = append(issued, c.BeginRenderTask())

		for i, tok := range issued {
			assert.Equal(t, i == len(issued)-1, c.IsCurrent(tok), "token %d of %d", i, len(issued))
		}
	}
}

func TestCoordinator_TokensIncrease(t *testing.T) {
	c, _, _, _ := newTestCoordinator()

	assert.False(t, c.IsCurrent(TaskToken(1)), "nothing issued yet")
	a := c.BeginRenderTask()
	b := c.BeginRenderTask()
	assert.Greater(t, uint64(b), uint64(a))
}

func TestCoordinator_RenderKeepsOneInstancePerTarget(t *testing.T) {
	c, engine, _, m := newTestCoordinator()

	for i := 0; i < 5; i++ {
		_, err := c.Render("nav-chart", func() any { return i })
		require.NoError(t, err)
		assert.Equal(t, 1, engine.Live("nav-chart"))
	}

	assert.Equal(t, 5, engine.Created("nav-chart"))
	assert.Equal(t, 5, engine.Chart("nav-chart").ID)
	assert.Equal(t, float64(5), testutil.ToFloat64(m.Renders.WithLabelValues("nav-chart")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.ChartDisposals.WithLabelValues("nav-chart")))
}

func TestCoordinator_DisposeThenRenderTwice(t *testing.T) {
	c, engine, _, _ := newTestCoordinator()

	for i := 0; i < 2; i++ {
		c.Dispose("event-nav-chart")
		assert.LessOrEqual(t, engine.Live("event-nav-chart"), 1)
		_, err := c.Render("event-nav-chart", func() any { return "option" })
		require.NoError(t, err)
		assert.Equal(t, 1, engine.Live("event-nav-chart"))
	}
}

func TestCoordinator_DisposeUnboundIsNoop(t *testing.T) {
	c, engine, _, m := newTestCoordinator()

	assert.False(t, c.Dispose("never-drawn"))
	assert.False(t, c.Dispose("never-drawn"))
	assert.Zero(t, engine.Created("never-drawn"))
	assert.Zero(t, testutil.ToFloat64(m.ChartDisposals.WithLabelValues("never-drawn")))
}

func TestCoordinator_RenderReplacesOption(t *testing.T) {
	c, engine, _, _ := newTestCoordinator()

	_, err := c.Render("nav-chart", func() any { return []string{"A", "B"} })
	require.NoError(t, err)
	first := engine.Chart("nav-chart")

	_, err = c.Render("nav-chart", func() any { return []string{"C"} })
	require.NoError(t, err)

	assert.True(t, first.Disposed())
	assert.Equal(t, []string{"C"}, engine.Chart("nav-chart").Option())
	assert.Equal(t, 1, engine.Chart("nav-chart").Draws())
}

func TestCoordinator_NoEngine(t *testing.T) {
	c := NewCoordinator(nil, NewManualScheduler(), logger.Nop(), nil)

	_, err := c.Render("nav-chart", func() any { return nil })
	assert.True(t, errors.Is(err, ErrNoEngine))
	assert.False(t, c.Dispose("nav-chart"))
}

type failingEngine struct{ *MemoryEngine }

func (failingEngine) Init(target string) (Handle, error) {
	return nil, errors.New("container has zero size")
}

func TestCoordinator_InitErrorIsWrapped(t *testing.T) {
	c := NewCoordinator(failingEngine{NewMemoryEngine()}, NewManualScheduler(), logger.Nop(), nil)

	_, err := c.Render("nav-chart", func() any { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init chart nav-chart")
}

func TestCoordinator_DeferDropsStaleSteps(t *testing.T) {
	c, _, sched, m := newTestCoordinator()

	var ran []string
	a := c.BeginRenderTask()
	c.Defer(a, "event-nav", 100*time.Millisecond, func() { ran = append(ran, "A") })

	b := c.BeginRenderTask()
	c.Defer(b, "event-nav", 100*time.Millisecond, func() { ran = append(ran, "B") })

	sched.Advance(50 * time.Millisecond)
	assert.Empty(t, ran, "nothing is due yet")

	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"B"}, ran)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StaleStepsDrop.WithLabelValues("event-nav")))
}

func TestCoordinator_DeferCheckedAtFireTime(t *testing.T) {
	c, _, sched, _ := newTestCoordinator()

	ran := false
	tok := c.BeginRenderTask()
	c.Defer(tok, "ranking-overview", 500*time.Millisecond, func() { ran = true })

	sched.Advance(400 * time.Millisecond)
	c.BeginRenderTask()
	sched.Advance(100 * time.Millisecond)

	assert.False(t, ran, "token went stale before the step fired")
	assert.Zero(t, sched.Pending())
}

func TestCoordinator_NestedDefer(t *testing.T) {
	c, engine, sched, _ := newTestCoordinator()

	tok := c.BeginRenderTask()
	c.Defer(tok, "event-nav", 100*time.Millisecond, func() {
		h, err := c.Render("event-nav-chart", func() any { return "nav" })
		require.NoError(t, err)
		c.Defer(tok, "event-nav-resize", 200*time.Millisecond, h.Resize)
	})

	sched.Flush()

	require.NotNil(t, engine.Chart("event-nav-chart"))
	assert.Equal(t, 1, engine.Chart("event-nav-chart").Resizes())
	assert.Equal(t, 300*time.Millisecond, sched.Now())
}
