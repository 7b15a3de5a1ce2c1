// Package dashboard owns the state of one dashboard page and wires selections
// to the chart and table renderers.
//
// All methods must run on the session loop. State is never locked.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/wonny/eventlens/internal/chart"
	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/render"
	"github.com/wonny/eventlens/internal/style"
	"github.com/wonny/eventlens/internal/table"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

// ErrUnknownSelection is returned for keys outside their enumeration; state is left untouched
var ErrUnknownSelection = errors.New("unknown selection")

// State is the application state of one page.
// Datasets is nil until loading completes and is set exactly once.
type State struct {
	Datasets              *dataset.Store
	SelectedEventType     contracts.EventType // empty until the first selection
	SelectedHoldingMetric contracts.HoldingMetric
	Page                  contracts.Page
}

// Dashboard renders the views of one page
type Dashboard struct {
	state   State
	coord   *render.Coordinator
	surface Surface
	charts  *chart.Builder
	tables  *table.Renderer
	delays  config.RenderConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// New creates a dashboard on the home page with TR selected. m may be nil.
func New(coord *render.Coordinator, surface Surface, styler *style.Styler, delays config.RenderConfig, log *logger.Logger, m *metrics.Metrics) *Dashboard {
	return &Dashboard{
		state: State{
			SelectedHoldingMetric: contracts.HoldingTR,
			Page:                  contracts.PageHome,
		},
		coord:   coord,
		surface: surface,
		charts:  chart.NewBuilder(styler),
		tables:  table.NewRenderer(styler),
		delays:  delays,
		logger:  log,
		metrics: m,
	}
}

// State returns a copy of the current state
func (d *Dashboard) State() State {
	return d.state
}

// Loaded reports whether datasets have been delivered
func (d *Dashboard) Loaded() bool {
	return d.state.Datasets != nil
}

// OnLoaded installs the finished store and fans out to every startup view.
// A nil store is treated as one with every dataset absent.
func (d *Dashboard) OnLoaded(store *dataset.Store) {
	if store == nil {
		store = dataset.Empty()
	}
	d.state.Datasets = store

	d.logger.WithField("available", store.Available()).Info("Dashboard datasets installed")

	// a selection made before loading finished is kept and rendered now
	hadSelection := d.state.SelectedEventType != ""

	d.renderTicker()
	d.renderHome()
	d.renderEventTypeButtons()
	if hadSelection {
		d.renderEventTypeDetail()
	}
	if d.state.Page == contracts.PageWeights {
		d.renderWeights()
	}
}

// ShowPage switches the visible page and renders its views
func (d *Dashboard) ShowPage(name string) error {
	page, ok := contracts.ParsePage(name)
	if !ok {
		return fmt.Errorf("%w: page %q", ErrUnknownSelection, name)
	}
	d.state.Page = page

	for _, p := range Pages() {
		d.setVisible(PageTarget(p), p == page)
		d.setActive(MenuTarget(p), p == page)
	}

	switch page {
	case contracts.PageHome:
		d.renderHome()
	case contracts.PageEvents:
		d.renderEventTypeDetail()
	case contracts.PageWeights:
		d.renderWeights()
	}
	return nil
}

// SelectEventType selects an event type, refreshes the button highlight and
// starts a new detail render task.
func (d *Dashboard) SelectEventType(code string) error {
	et, ok := contracts.ParseEventType(code)
	if !ok {
		return fmt.Errorf("%w: event type %q", ErrUnknownSelection, code)
	}
	d.state.SelectedEventType = et

	d.renderEventTypeButtons()
	d.renderEventTypeDetail()
	return nil
}

// SelectHoldingMetric selects the metric of the holding-period chart and redraws it
func (d *Dashboard) SelectHoldingMetric(name string) error {
	metric, ok := contracts.ParseHoldingMetric(name)
	if !ok {
		return fmt.Errorf("%w: holding metric %q", ErrUnknownSelection, name)
	}
	d.state.SelectedHoldingMetric = metric

	for _, m := range contracts.HoldingMetrics() {
		d.setActive(HoldingButtonTarget(m), m == metric)
	}

	d.renderHoldingChart()
	return nil
}
