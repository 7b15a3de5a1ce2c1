package dashboard

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/eventlens/internal/chart"
	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/dataset/datasettest"
	"github.com/wonny/eventlens/internal/render"
	"github.com/wonny/eventlens/internal/style"
	"github.com/wonny/eventlens/internal/table"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

type harness struct {
	dash    *Dashboard
	engine  *render.MemoryEngine
	sched   *render.ManualScheduler
	surface *MemorySurface
	metrics *metrics.Metrics
}

func newHarness(t *testing.T, targets ...string) *harness {
	t.Helper()

	engine := render.NewMemoryEngine()
	sched := render.NewManualScheduler()
	m := metrics.New("")
	surface := NewMemorySurface(targets...)
	coord := render.NewCoordinator(engine, sched, logger.Nop(), m)
	cfg := config.Default()

	return &harness{
		dash:    New(coord, surface, style.Default(), cfg.Render, logger.Nop(), m),
		engine:  engine,
		sched:   sched,
		surface: surface,
		metrics: m,
	}
}

func (h *harness) option(t *testing.T, target string) *chart.Option {
	t.Helper()

	c := h.engine.Chart(target)
	require.NotNil(t, c, "no chart bound to %s", target)
	opt, ok := c.Option().(*chart.Option)
	require.True(t, ok)
	return opt
}

func TestOnLoaded_RendersStartupViews(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))

	assert.Equal(t, "8", h.surface.Text(TargetTotalModels))
	assert.Equal(t, "3", h.surface.Text(TargetEventTypes))
	assert.Equal(t, "35.0%", h.surface.Text(TargetBestARR))
	assert.Equal(t, "2.10", h.surface.Text(TargetBestSR))
	assert.Contains(t, h.surface.HTML(TargetTicker), "Janus-Q")
	assert.Contains(t, h.surface.HTML(TargetRankingsBody), "🥇")

	for _, target := range []string{TargetNavChart, TargetHomeChart, TargetRadarChart, TargetHoldingChart} {
		assert.Equal(t, 1, h.engine.Live(target), target)
	}

	// first listed event type is auto-selected and its detail started
	assert.Equal(t, contracts.EventPersonalBehavior, h.dash.State().SelectedEventType)
	assert.Contains(t, h.surface.HTML(TargetEventButtons), `data-event-type="行业"`)
	assert.Equal(t, "Personal Behavior - Net Asset Value (NAV) Results", h.surface.Text(TargetEventNavTitle))
	assert.Equal(t, "Personal Behavior - Detailed Metrics", h.surface.Text(TargetEventTitle))
	assert.True(t, h.surface.Visible(TargetEventContent))

	// deferred steps
	assert.Nil(t, h.engine.Chart(TargetEventNavChart))
	h.sched.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"Janus-Q", "GPT-4o-mini", "CSI 300"}, h.option(t, TargetEventNavChart).SeriesNames())
	assert.Nil(t, h.engine.Chart(TargetMedalsChart))

	h.sched.Advance(200 * time.Millisecond)
	assert.Equal(t, 1, h.engine.Chart(TargetEventNavChart).Resizes())

	h.sched.Advance(200 * time.Millisecond)
	assert.NotNil(t, h.engine.Chart(TargetMedalsChart))
	assert.NotNil(t, h.engine.Chart(TargetChampionsChart))
	assert.Zero(t, h.sched.Pending())
}

func TestOnLoaded_HoldingDatasetMissing(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t, contracts.DatasetHoldingPeriod))
	h.sched.Flush()

	assert.Nil(t, h.engine.Chart(TargetHoldingChart))
	assert.Equal(t, table.EmptyPlaceholder, h.surface.HTML(TargetHoldingChart))

	for _, target := range []string{TargetNavChart, TargetHomeChart, TargetRadarChart, TargetEventNavChart, TargetMedalsChart, TargetChampionsChart} {
		assert.Equal(t, 1, h.engine.Live(target), target)
	}
	assert.NotEmpty(t, h.surface.HTML(TargetRankingsBody))

	// selecting a metric keeps working with the slot absent
	require.NoError(t, h.dash.SelectHoldingMetric("SR"))
	assert.Nil(t, h.engine.Chart(TargetHoldingChart))
	assert.True(t, h.surface.Active(HoldingButtonTarget(contracts.HoldingSR)))
}

func TestSelectEventType_OnlyLatestNavChartIsDrawn(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))
	h.sched.Flush()

	created := h.engine.Created(TargetEventNavChart)
	writes := h.surface.Writes(TargetEventNavChart)
	dropped := testutil.ToFloat64(h.metrics.StaleStepsDrop.WithLabelValues(StepEventNav))

	// A then B before A's layout pause elapses
	require.NoError(t, h.dash.SelectEventType(string(contracts.EventPersonalBehavior)))
	h.sched.Advance(50 * time.Millisecond)
	require.NoError(t, h.dash.SelectEventType(string(contracts.EventDividend)))

	h.sched.Advance(60 * time.Millisecond)
	assert.Equal(t, created, h.engine.Created(TargetEventNavChart), "A's step must not draw")
	assert.Equal(t, writes, h.surface.Writes(TargetEventNavChart), "A's step must not touch the region")
	assert.Equal(t, dropped+1, testutil.ToFloat64(h.metrics.StaleStepsDrop.WithLabelValues(StepEventNav)))

	h.sched.Flush()
	assert.Equal(t, created+1, h.engine.Created(TargetEventNavChart))
	assert.Equal(t, []string{"Qwen2.5-7B", "CSI 500"}, h.option(t, TargetEventNavChart).SeriesNames())
	assert.Equal(t, 1, h.engine.Live(TargetEventNavChart))
	assert.Equal(t, "Dividend - Detailed Metrics", h.surface.Text(TargetEventTitle))
	assert.Equal(t, contracts.EventDividend, h.dash.State().SelectedEventType)
}

func TestSelectEventType_SecondNavRenderReplacesFirst(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))
	h.sched.Flush()

	first := h.engine.Chart(TargetEventNavChart)
	require.NotNil(t, first)
	require.Equal(t, []string{"Janus-Q", "GPT-4o-mini", "CSI 300"}, h.option(t, TargetEventNavChart).SeriesNames())

	require.NoError(t, h.dash.SelectEventType(string(contracts.EventDividend)))
	h.sched.Flush()

	assert.True(t, first.Disposed())
	opt := h.option(t, TargetEventNavChart)
	assert.Equal(t, []string{"Qwen2.5-7B", "CSI 500"}, opt.SeriesNames())
	_, residual := opt.FindSeries("Janus-Q")
	assert.False(t, residual)
	assert.Equal(t, 1, h.engine.Live(TargetEventNavChart))
}

func TestSelectEventType_WithoutNavShowsPlaceholder(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))
	h.sched.Flush()
	require.Equal(t, 1, h.engine.Live(TargetEventNavChart))

	require.NoError(t, h.dash.SelectEventType(string(datasettest.EventWithoutNav)))
	assert.Zero(t, h.engine.Live(TargetEventNavChart), "old chart disposed before the placeholder")
	assert.Equal(t, table.LoadingPlaceholder, h.surface.HTML(TargetEventNavChart))

	h.sched.Flush()
	assert.Zero(t, h.engine.Live(TargetEventNavChart))
}

func TestSelectors_RejectUnknownKeys(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))
	h.sched.Flush()
	before := h.dash.State()
	tokenDrawn := h.engine.Created(TargetEventNavChart)

	assert.ErrorIs(t, h.dash.SelectEventType("Dividend"), ErrUnknownSelection)
	assert.ErrorIs(t, h.dash.SelectEventType(""), ErrUnknownSelection)
	assert.ErrorIs(t, h.dash.SelectHoldingMetric("CR"), ErrUnknownSelection)
	assert.ErrorIs(t, h.dash.ShowPage("settings"), ErrUnknownSelection)

	assert.Equal(t, before, h.dash.State())
	h.sched.Flush()
	assert.Equal(t, tokenDrawn, h.engine.Created(TargetEventNavChart))
}

func TestSelectHoldingMetric_RedrawsSynchronously(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))

	require.NoError(t, h.dash.SelectHoldingMetric("MDD"))

	assert.Equal(t, "Metric: MDD vs Holding Period", h.option(t, TargetHoldingChart).Title.Text)
	assert.Equal(t, 1, h.engine.Live(TargetHoldingChart))
	assert.True(t, h.surface.Active(HoldingButtonTarget(contracts.HoldingMDD)))
	assert.False(t, h.surface.Active(HoldingButtonTarget(contracts.HoldingTR)))
	assert.Equal(t, contracts.HoldingMDD, h.dash.State().SelectedHoldingMetric)
}

func TestMissingTargetIsSkipped(t *testing.T) {
	var targets []string
	for _, target := range AllTargets() {
		if target != TargetNavChart && target != TargetRankingsBody {
			targets = append(targets, target)
		}
	}

	h := newHarness(t, targets...)
	h.dash.OnLoaded(datasettest.Store(t))

	assert.Zero(t, h.engine.Created(TargetNavChart))
	assert.Zero(t, h.surface.Writes(TargetRankingsBody))
	assert.Equal(t, 1, h.engine.Live(TargetHomeChart))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.MissingTargets.WithLabelValues(TargetNavChart)))
}

func TestEventNavTargetRemovedBeforeDeferredStep(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))

	h.surface.Remove(TargetEventNavChart)
	h.sched.Flush()

	assert.Zero(t, h.engine.Created(TargetEventNavChart))
	assert.NotNil(t, h.engine.Chart(TargetMedalsChart))
}

func TestZeroDatasetsStaysInteractive(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(dataset.Empty())
	h.sched.Flush()

	assert.Equal(t, table.EmptyPlaceholder, h.surface.HTML(TargetNavChart))
	assert.Equal(t, table.EmptyPlaceholder, h.surface.HTML(TargetHoldingChart))
	assert.Empty(t, h.surface.Text(TargetTotalModels))

	require.NoError(t, h.dash.SelectHoldingMetric("SR"))
	require.NoError(t, h.dash.SelectEventType(string(contracts.EventDividend)))
	require.NoError(t, h.dash.ShowPage("events"))
	require.NoError(t, h.dash.ShowPage("weights"))
	require.NoError(t, h.dash.ShowPage("home"))
	h.sched.Flush()

	assert.Empty(t, h.engine.Targets(), "nothing to draw")
	assert.Equal(t, table.EmptyPlaceholder, h.surface.HTML(TargetWeightsPie))
	assert.Equal(t, contracts.EventDividend, h.dash.State().SelectedEventType)
}

func TestNilStoreTreatedAsEmpty(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(nil)

	assert.True(t, h.dash.Loaded())
	assert.Zero(t, h.dash.State().Datasets.Available())
}

func TestSelectionBeforeLoadIsKept(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.dash.SelectEventType(string(contracts.EventDividend)))
	require.NoError(t, h.dash.SelectHoldingMetric("SR"))
	assert.Empty(t, h.engine.Targets(), "nothing renders before the store is installed")
	assert.Zero(t, h.sched.Pending())

	h.dash.OnLoaded(datasettest.Store(t))
	h.sched.Flush()

	assert.Equal(t, contracts.EventDividend, h.dash.State().SelectedEventType)
	assert.Equal(t, []string{"Qwen2.5-7B", "CSI 500"}, h.option(t, TargetEventNavChart).SeriesNames())
	assert.Equal(t, "Metric: SR vs Holding Period", h.option(t, TargetHoldingChart).Title.Text)
}

func TestShowPage(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))

	require.NoError(t, h.dash.ShowPage("weights"))

	assert.Equal(t, contracts.PageWeights, h.dash.State().Page)
	assert.True(t, h.surface.Visible(PageTarget(contracts.PageWeights)))
	assert.False(t, h.surface.Visible(PageTarget(contracts.PageHome)))
	assert.True(t, h.surface.Active(MenuTarget(contracts.PageWeights)))
	assert.Equal(t, 1, h.engine.Live(TargetWeightsPie))
	assert.Equal(t, 1, h.engine.Live(TargetWeightsBar))
	assert.Contains(t, h.surface.HTML(TargetWeightsTable), "35.00%")

	// revisiting a page redraws without leaking instances
	require.NoError(t, h.dash.ShowPage("home"))
	require.NoError(t, h.dash.ShowPage("home"))
	assert.Equal(t, 1, h.engine.Live(TargetNavChart))
	assert.Equal(t, 3, h.engine.Created(TargetNavChart))
}

func TestShowPageEvents_StartsNewTask(t *testing.T) {
	h := newHarness(t)
	h.dash.OnLoaded(datasettest.Store(t))

	// leaving and re-entering the events page supersedes the startup task
	require.NoError(t, h.dash.ShowPage("events"))
	h.sched.Flush()

	assert.Equal(t, 1, h.engine.Created(TargetEventNavChart))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.StaleStepsDrop.WithLabelValues(StepEventNav)))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.StaleStepsDrop.WithLabelValues(StepRankingOverview)))
}
