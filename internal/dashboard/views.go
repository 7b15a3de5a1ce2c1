package dashboard

import (
	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/ranking"
	"github.com/wonny/eventlens/internal/render"
	"github.com/wonny/eventlens/internal/table"
)

func (d *Dashboard) renderTicker() {
	if !d.Loaded() {
		return
	}

	rows := d.state.Datasets.Unified()
	if rows == nil {
		d.setHTML(TargetTicker, "")
		return
	}
	d.writeMarkup(TargetTicker, func() (string, error) { return d.tables.Ticker(rows) })
}

// renderHome draws every home view. Each view depends only on its own dataset.
func (d *Dashboard) renderHome() {
	if !d.Loaded() {
		return
	}
	store := d.state.Datasets

	counters := table.Summary(store.Summary(), store.Unified())
	if store.Summary() != nil {
		d.setText(TargetTotalModels, counters.TotalModels)
		d.setText(TargetEventTypes, counters.EventTypes)
	}
	if counters.BestARR != "" {
		d.setText(TargetBestARR, counters.BestARR)
		d.setText(TargetBestSR, counters.BestSR)
	}

	if nav := store.Nav(); nav != nil {
		d.drawChart(TargetNavChart, func() any { return d.charts.NavHistory(nav) })
	} else {
		d.placeholder(TargetNavChart, table.EmptyPlaceholder)
	}

	if rows := store.Unified(); rows != nil {
		d.drawChart(TargetHomeChart, func() any { return d.charts.ARRComparison(rows) })
		d.writeMarkup(TargetRankingsBody, func() (string, error) { return d.tables.RankingRows(rows) })
		d.drawChart(TargetRadarChart, func() any { return d.charts.PerformanceRadar(rows, store.AccuracyFor) })
	} else {
		d.placeholder(TargetHomeChart, table.EmptyPlaceholder)
		d.setHTML(TargetRankingsBody, "")
		d.placeholder(TargetRadarChart, table.EmptyPlaceholder)
	}

	d.renderHoldingChart()
}

// renderHoldingChart is synchronous end to end and needs no task token
func (d *Dashboard) renderHoldingChart() {
	if !d.Loaded() {
		return
	}

	h := d.state.Datasets.Holding()
	if h == nil {
		d.placeholder(TargetHoldingChart, table.EmptyPlaceholder)
		return
	}

	metric := d.state.SelectedHoldingMetric
	d.drawChart(TargetHoldingChart, func() any { return d.charts.HoldingPeriod(h, metric) })
}

// renderEventTypeButtons lists event types present in the data, in canonical
// order, and selects the first one when nothing is selected yet.
func (d *Dashboard) renderEventTypeButtons() {
	if !d.Loaded() {
		return
	}

	results := d.state.Datasets.EventTypeResults()
	if results == nil {
		return
	}

	var listed []contracts.EventType
	for _, et := range contracts.EventTypes() {
		if _, ok := results[et]; ok {
			listed = append(listed, et)
		}
	}

	selected := d.state.SelectedEventType
	d.writeMarkup(TargetEventButtons, func() (string, error) {
		return d.tables.EventTypeButtons(listed, selected)
	})

	if len(listed) > 0 && selected == "" {
		_ = d.SelectEventType(string(listed[0]))
	}
}

// renderEventTypeDetail draws titles and the metrics table synchronously, then
// defers the NAV chart and the ranking overview under a fresh task token.
func (d *Dashboard) renderEventTypeDetail() {
	if !d.Loaded() {
		return
	}

	store := d.state.Datasets
	results := store.EventTypeResults()
	et := d.state.SelectedEventType
	if results == nil || et == "" {
		return
	}

	token := d.coord.BeginRenderTask()
	name := et.DisplayName()

	d.setVisible(TargetEventContent, true)
	d.setText(TargetEventNavTitle, name+" - Net Asset Value (NAV) Results")
	d.setText(TargetEventTitle, name+" - Detailed Metrics")

	rows := results[et]
	d.writeMarkup(TargetEventTable, func() (string, error) { return d.tables.EventRows(rows) })

	if nav, ok := store.EventNav().For(et); ok {
		d.coord.Defer(token, StepEventNav, d.delays.NavLayoutDelay, func() {
			d.renderEventNavChart(token, nav)
		})
	} else {
		d.placeholder(TargetEventNavChart, table.LoadingPlaceholder)
	}

	d.coord.Defer(token, StepRankingOverview, d.delays.RankingDelay, d.renderRankingOverview)
}

func (d *Dashboard) renderEventNavChart(token render.TaskToken, nav contracts.NavSeries) {
	if !d.exists(TargetEventNavChart) {
		return
	}

	d.coord.Dispose(TargetEventNavChart)
	d.surface.SetHTML(TargetEventNavChart, "")

	h, err := d.coord.Render(TargetEventNavChart, func() any { return d.charts.EventNav(nav) })
	if err != nil {
		d.logger.WithField("target", TargetEventNavChart).WithError(err).Warn("Chart render failed")
		return
	}

	d.coord.Defer(token, StepEventNavResize, d.delays.ResizeDelay, h.Resize)
}

func (d *Dashboard) renderRankingOverview() {
	results := d.state.Datasets.EventTypeResults()
	if results == nil {
		return
	}

	tally := ranking.TallyMedals(results)
	d.drawChart(TargetMedalsChart, func() any { return d.charts.Medals(tally) })
	d.drawChart(TargetChampionsChart, func() any { return d.charts.Champions(tally) })
}

func (d *Dashboard) renderWeights() {
	if !d.Loaded() {
		return
	}

	ws := d.state.Datasets.Weights()
	if ws == nil {
		d.placeholder(TargetWeightsPie, table.EmptyPlaceholder)
		d.placeholder(TargetWeightsBar, table.EmptyPlaceholder)
		d.setHTML(TargetWeightsTable, "")
		return
	}

	d.drawChart(TargetWeightsPie, func() any { return d.charts.WeightsPie(ws) })
	d.drawChart(TargetWeightsBar, func() any { return d.charts.WeightsBar(ws) })
	d.writeMarkup(TargetWeightsTable, func() (string, error) { return d.tables.WeightRows(ws) })
}
