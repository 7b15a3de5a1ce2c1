package chart

import (
	"fmt"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/format"
	"github.com/wonny/eventlens/internal/ranking"
	"github.com/wonny/eventlens/internal/style"
)

// Builder turns dataset slices into options, applying the shared style rules
type Builder struct {
	style *style.Styler
}

// NewBuilder creates a builder
func NewBuilder(s *style.Styler) *Builder {
	return &Builder{style: s}
}

// Styler returns the style rules in use
func (b *Builder) Styler() *style.Styler {
	return b.style
}

// lineSeries applies the uniform emphasis to one NAV-style line
func (b *Builder) lineSeries(name string, values []float64, smooth bool) Series {
	e := b.style.Emphasis(name)
	color, _ := style.ColorFor(name)

	ls := &LineStyle{Width: e.Width, Type: e.LineType, Color: color}
	if e.Opacity < 1 {
		ls.Opacity = e.Opacity
	}

	return Series{
		Name:       name,
		Type:       "line",
		Data:       values,
		Smooth:     smooth,
		ShowSymbol: boolPtr(false),
		LineStyle:  ls,
		Z:          e.Z,
	}
}

// barStyle colors one bar and marks the highlighted model and benchmarks
func (b *Builder) barStyle(name, color string) *ItemStyle {
	is := &ItemStyle{Color: color}
	if b.style.IsHighlighted(name) {
		is.BorderColor = style.HighlightColor
		is.BorderWidth = 2
	}
	if b.style.IsBenchmark(name) {
		is.BorderColor = style.MutedColor
		is.BorderWidth = 1
		is.BorderType = style.LineDashed
		is.Opacity = b.style.Emphasis(name).Opacity
	}
	return is
}

// NavHistory is the overall NAV line chart
func (b *Builder) NavHistory(nav *contracts.NavSeries) *Option {
	if nav == nil {
		return nil
	}

	series := make([]Series, 0, len(nav.Series))
	for _, s := range nav.Series {
		series = append(series, b.lineSeries(s.Name, s.Values, false))
	}

	return &Option{
		Title:    &Title{Text: "Net Asset Value (NAV) History", Left: "center"},
		Tooltip:  &Tooltip{Trigger: "axis", Confine: true},
		Legend:   &Legend{Type: "scroll", Bottom: intPtr(10)},
		Grid:     &Grid{Left: "3%", Right: "4%", Bottom: "15%", ContainLabel: true},
		XAxis:    &Axis{Type: "category", Data: nav.Dates, AxisLabel: &AxisLabel{Rotate: 45}},
		YAxis:    &Axis{Type: "value", Scale: true},
		DataZoom: []DataZoom{{Type: "inside", Start: 0, End: 100}},
		Series:   series,
	}
}

// EventNav is the NAV chart of one event type
func (b *Builder) EventNav(nav contracts.NavSeries) *Option {
	series := make([]Series, 0, len(nav.Series))
	for _, s := range nav.Series {
		series = append(series, b.lineSeries(s.Name, s.Values, true))
	}

	return &Option{
		Tooltip: &Tooltip{Trigger: "axis", Confine: true},
		Legend:  &Legend{Type: "scroll", Bottom: intPtr(0)},
		Grid:    &Grid{Left: "3%", Right: "4%", Bottom: "15%", ContainLabel: true},
		XAxis:   &Axis{Type: "category", Data: nav.Dates, AxisLabel: &AxisLabel{Rotate: 45, FontSize: 10}},
		YAxis:   &Axis{Type: "value", Scale: true},
		Series:  series,
	}
}

// ARRComparison is the ARR bar chart in dataset order
func (b *Builder) ARRComparison(rows []contracts.ModelResult) *Option {
	names := make([]string, len(rows))
	points := make([]DataPoint, len(rows))
	for i, r := range rows {
		names[i] = r.Name
		points[i] = DataPoint{
			Value:     format.PercentValue(r.Metrics.ARR, 2),
			ItemStyle: b.barStyle(r.Name, style.ColorOr(r.Name, i)),
		}
	}

	return &Option{
		Title:   &Title{Text: "Annual Return Rate (ARR) Comparison", Left: "center"},
		Tooltip: &Tooltip{Trigger: "axis"},
		XAxis:   &Axis{Type: "category", Data: names, AxisLabel: &AxisLabel{Rotate: 45}},
		YAxis:   &Axis{Type: "value", AxisLabel: &AxisLabel{Formatter: "{value}%"}},
		Series:  []Series{{Type: "bar", Data: points}},
	}
}

// AccuracyLookup resolves DA/ETA for a model whose metrics omit them
type AccuracyLookup func(model string) (contracts.ModelAccuracy, bool)

// PerformanceRadar plots the top five non-benchmark models by ARR on
// [TR%, SR, DA, ETA, 50 - MDD%].
func (b *Builder) PerformanceRadar(rows []contracts.ModelResult, accuracy AccuracyLookup) *Option {
	top := ranking.TopByARR(rows, ranking.RadarSize, b.style.IsBenchmark)

	legend := make([]string, len(top))
	values := make([]RadarValue, len(top))
	for i, r := range top {
		legend[i] = r.Name
		da, eta := radarAccuracy(r, accuracy)
		e := b.style.Emphasis(r.Name)

		values[i] = RadarValue{
			Name: r.Name,
			Value: []float64{
				format.PercentValue(r.Metrics.TotalReturn, 2),
				format.Round(r.Metrics.SR, 4),
				format.Round(da, 4),
				format.Round(eta, 4),
				format.Round(50-format.PercentValue(r.Metrics.MDD, 4), 2),
			},
			LineStyle: &LineStyle{Width: e.Width},
			Z:         e.Z,
		}
	}

	return &Option{
		Title:   &Title{Text: "Top 5 Models Performance Radar", Left: "center"},
		Tooltip: &Tooltip{Trigger: "item"},
		Legend:  &Legend{Bottom: intPtr(0), Data: legend},
		Radar: &Radar{Indicator: []Indicator{
			{Name: "TR (%)", Max: 100},
			{Name: "SR", Max: 5},
			{Name: "DA (%)", Max: 1},
			{Name: "ETA (%)", Max: 1},
			{Name: "Low MDD (%)", Max: 50},
		}},
		Series: []Series{{Type: "radar", Data: values}},
	}
}

func radarAccuracy(r contracts.ModelResult, accuracy AccuracyLookup) (da, eta float64) {
	da, eta = r.Metrics.DirectionalAccuracy(), r.Metrics.EventTimingAccuracy()
	if accuracy == nil || (r.Metrics.DA != nil && r.Metrics.ETA != nil) {
		return da, eta
	}

	acc, ok := accuracy(r.Name)
	if !ok {
		return da, eta
	}
	if r.Metrics.DA == nil && acc.DA != nil {
		da = *acc.DA
	}
	if r.Metrics.ETA == nil && acc.ETA != nil {
		eta = *acc.ETA
	}
	return da, eta
}

// HoldingPeriod plots the selected metric of every model against holding period.
// Models without a sweep for the metric are skipped.
func (b *Builder) HoldingPeriod(h *contracts.HoldingPeriodData, metric contracts.HoldingMetric) *Option {
	if h == nil {
		return nil
	}

	series := make([]Series, 0, len(h.Models))
	for _, m := range h.Models {
		values := h.Values(m, metric)
		if values == nil {
			continue
		}

		e := b.style.Emphasis(m)
		color, _ := style.ColorFor(m)
		width := e.Width
		if width < 3 {
			width = 3
		}

		ls := &LineStyle{Width: width, Type: e.LineType}
		if e.Opacity < 1 {
			ls.Opacity = e.Opacity
		}

		series = append(series, Series{
			Name:       m,
			Type:       "line",
			Data:       values,
			SymbolSize: 8,
			LineStyle:  ls,
			ItemStyle:  &ItemStyle{Color: color},
			Z:          e.Z,
		})
	}

	return &Option{
		Title:   &Title{Text: fmt.Sprintf("Metric: %s vs Holding Period", metric), Left: "center"},
		Tooltip: &Tooltip{Trigger: "axis"},
		Legend:  &Legend{Bottom: intPtr(0)},
		XAxis:   &Axis{Type: "category", Data: h.HoldingPeriods, Name: "Days"},
		YAxis:   &Axis{Type: "value", Scale: true},
		Series:  series,
	}
}

// Medals is the stacked gold/silver/bronze chart, models ordered by medal score
func (b *Builder) Medals(t *ranking.Tally) *Option {
	models := t.ByScore()

	stack := func(name, color string, count func(ranking.Medals) int) Series {
		points := make([]DataPoint, len(models))
		for i, m := range models {
			is := b.barStyle(m, color)
			points[i] = DataPoint{Value: float64(count(t.Medals[m])), ItemStyle: is}
		}
		return Series{Name: name, Type: "bar", Stack: "m", Data: points, ItemStyle: &ItemStyle{Color: color}}
	}

	return &Option{
		Title:   &Title{Text: "Model Medal Count", Left: "center"},
		Tooltip: &Tooltip{Trigger: "axis"},
		Legend:  &Legend{Data: []string{"Gold", "Silver", "Bronze"}, Top: 30},
		XAxis:   &Axis{Data: models, AxisLabel: &AxisLabel{Rotate: 45}},
		YAxis:   &Axis{Type: "value"},
		Series: []Series{
			stack("Gold", style.GoldColor, func(m ranking.Medals) int { return m.Gold }),
			stack("Silver", style.SilverColor, func(m ranking.Medals) int { return m.Silver }),
			stack("Bronze", style.BronzeColor, func(m ranking.Medals) int { return m.Bronze }),
		},
	}
}

// Champions shows the winning total return of each event type, labelled with the winner
func (b *Builder) Champions(t *ranking.Tally) *Option {
	categories := make([]string, len(t.Champions))
	points := make([]DataPoint, len(t.Champions))
	for i, c := range t.Champions {
		categories[i] = c.EventType.DisplayName()
		points[i] = DataPoint{
			Value:     format.PercentValue(c.TotalReturn, 2),
			Champion:  c.Model,
			ItemStyle: b.barStyle(c.Model, style.ColorOr(c.Model, 0)),
			Label:     &Label{Show: true, Position: "top", Formatter: c.Model, FontSize: 10},
		}
	}

	return &Option{
		Title:   &Title{Text: "Champion by Category", Left: "center"},
		Tooltip: &Tooltip{Trigger: "axis"},
		XAxis:   &Axis{Data: categories, AxisLabel: &AxisLabel{Rotate: 45}},
		YAxis:   &Axis{Name: "Return (%)"},
		Series:  []Series{{Type: "bar", Data: points}},
	}
}

// WeightsPie is the donut of event weight percentages
func (b *Builder) WeightsPie(ws contracts.WeightSet) *Option {
	points := make([]DataPoint, len(ws))
	for i, w := range ws {
		points[i] = DataPoint{
			Name:      w.EventType.DisplayName(),
			Value:     w.Percentage,
			ItemStyle: &ItemStyle{Color: style.PaletteColor(i)},
		}
	}

	return &Option{
		Title:   &Title{Text: "Historical Event Weights (Pie)", Left: "center"},
		Tooltip: &Tooltip{Trigger: "item"},
		Series:  []Series{{Type: "pie", Radius: []string{"40%", "70%"}, Data: points}},
	}
}

// WeightsBar compares raw event weights
func (b *Builder) WeightsBar(ws contracts.WeightSet) *Option {
	names := make([]string, len(ws))
	points := make([]DataPoint, len(ws))
	for i, w := range ws {
		names[i] = w.EventType.DisplayName()
		points[i] = DataPoint{
			Value:     format.Round(w.Weight, 4),
			ItemStyle: &ItemStyle{Color: style.PaletteColor(i)},
		}
	}

	return &Option{
		Title:   &Title{Text: "Event Weight Comparison (Bar)", Left: "center"},
		Tooltip: &Tooltip{Trigger: "axis"},
		XAxis:   &Axis{Type: "category", Data: names, AxisLabel: &AxisLabel{Rotate: 45}},
		YAxis:   &Axis{Type: "value", Name: "Weight"},
		Series:  []Series{{Type: "bar", Data: points}},
	}
}
