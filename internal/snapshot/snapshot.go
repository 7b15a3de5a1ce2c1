// Package snapshot renders NAV series to PNG with the dashboard's style rules,
// for sharing a chart outside the browser.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/style"
)

const dateLayout = "2006-01-02"

var (
	// ErrNotEnoughPoints is returned for series with fewer than two dates
	ErrNotEnoughPoints = errors.New("snapshot: at least two dates required")

	// ErrNoSeries is returned when nothing is left to draw
	ErrNoSeries = errors.New("snapshot: no series")
)

// Renderer draws NAV snapshots
type Renderer struct {
	style  *style.Styler
	Width  int
	Height int
}

// New creates a renderer with the default 1200x600 canvas
func New(s *style.Styler) *Renderer {
	return &Renderer{style: s, Width: 1200, Height: 600}
}

// NavPNG writes nav as a PNG line chart. Benchmarks are drawn first and the
// highlighted model last so it stays on top.
func (r *Renderer) NavPNG(w io.Writer, title string, nav contracts.NavSeries) error {
	if len(nav.Dates) < 2 {
		return ErrNotEnoughPoints
	}
	if len(nav.Series) == 0 {
		return ErrNoSeries
	}

	times, useTime := parseDates(nav.Dates)

	ordered := make([]contracts.NamedSeries, len(nav.Series))
	copy(ordered, nav.Series)
	sort.SliceStable(ordered, func(i, j int) bool {
		return r.style.Emphasis(ordered[i].Name).Z < r.style.Emphasis(ordered[j].Name).Z
	})

	paletteIndex := make(map[string]int, len(nav.Series))
	for i, s := range nav.Series {
		paletteIndex[s.Name] = i
	}

	series := make([]chart.Series, 0, len(ordered))
	lo, hi := 0.0, 0.0
	first := true
	for _, s := range ordered {
		if len(s.Values) != len(nav.Dates) {
			continue
		}
		for _, v := range s.Values {
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}

		st := r.seriesStyle(s.Name, paletteIndex[s.Name])
		if useTime {
			series = append(series, chart.TimeSeries{Name: s.Name, XValues: times, YValues: s.Values, Style: st})
		} else {
			series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: indexes(len(s.Values)), YValues: s.Values, Style: st})
		}
	}
	if len(series) == 0 {
		return ErrNoSeries
	}

	ch := chart.Chart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis:      chart.YAxis{Name: "NAV"},
		Series:     series,
	}
	if useTime {
		ch.XAxis = chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter}
	}
	if lo == hi {
		// a flat chart has no value range of its own
		ch.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

func (r *Renderer) seriesStyle(name string, i int) chart.Style {
	e := r.style.Emphasis(name)

	color := drawing.ColorFromHex(strings.TrimPrefix(style.ColorOr(name, i), "#"))
	if e.Opacity < 1 {
		color = color.WithAlpha(uint8(e.Opacity * 255))
	}

	st := chart.Style{
		StrokeColor: color,
		StrokeWidth: float64(e.Width),
	}
	if e.LineType == style.LineDashed {
		st.StrokeDashArray = []float64{6, 4}
	}
	return st
}

// parseDates returns the parsed dates, or false when any of them is not YYYY-MM-DD
func parseDates(dates []string) ([]time.Time, bool) {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}

func indexes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
