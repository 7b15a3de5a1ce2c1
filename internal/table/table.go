// Package table renders the markup fragments of the dashboard: table bodies,
// the ticker, the event-type buttons and the summary counters.
package table

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/format"
	"github.com/wonny/eventlens/internal/ranking"
	"github.com/wonny/eventlens/internal/style"
)

// LoadingPlaceholder is written into a chart region whose data is not there yet
const LoadingPlaceholder = `<div class="placeholder" style="padding:5rem; text-align:center; color:#667eea;">⏳ Loading data...</div>`

// EmptyPlaceholder marks a view whose dataset is absent
const EmptyPlaceholder = `<div class="placeholder" style="padding:5rem; text-align:center; color:#999;">No data available</div>`

var medalEmoji = []string{"🥇", "🥈", "🥉"}

var funcMap = template.FuncMap{
	"percent": format.Percent,
	"ratio":   format.Ratio,
	"fixed":   format.Fixed,
	"positive": func(v float64) bool {
		return style.ReturnColor(v) == style.PositiveColor
	},
}

var templates = template.Must(template.New("table").Funcs(funcMap).Parse(`
{{define "ranking"}}{{range .}}<tr{{if .Highlighted}} class="highlighted" style="background: rgba(245, 158, 11, 0.1); font-weight: bold;"{{end}}>
<td class="rank" style="text-align:center;">{{.Rank}}</td>
<td class="name" style="color:{{if .Highlighted}}#f59e0b{{else}}#000{{end}}">{{.Name}}</td>
<td class="strategy">{{.Strategy}}</td>
<td class="arr" style="text-align:right;">{{percent .Metrics.ARR}}</td>
<td class="sr" style="text-align:right;">{{ratio .Metrics.SR}}</td>
<td class="mdd" style="text-align:right;">{{percent .Metrics.MDD}}</td>
<td class="cr" style="text-align:right;">{{ratio .Metrics.CR}}</td>
<td class="total-return" style="text-align:right; color:{{if positive .Metrics.TotalReturn}}#ef4444{{else}}#10b981{{end}};">{{percent .Metrics.TotalReturn}}</td>
<td class="days" style="text-align:right; color:#666;">{{.Metrics.Days}}</td>
</tr>
{{end}}{{end}}

{{define "event"}}{{range .}}<tr{{if .Highlighted}} class="highlighted" style="background: rgba(245, 158, 11, 0.1);"{{end}}>
<td class="name" style="font-weight:bold;{{if .Highlighted}} color:#f59e0b;{{end}}">{{.Name}}</td>
<td class="arr" style="text-align:right;">{{percent .Metrics.ARR}}</td>
<td class="sr" style="text-align:right;">{{ratio .Metrics.SR}}</td>
<td class="mdd" style="text-align:right;">{{percent .Metrics.MDD}}</td>
<td class="cr" style="text-align:right;">{{ratio .Metrics.CR}}</td>
<td class="total-return" style="text-align:right; font-weight:bold; color:{{if positive .Metrics.TotalReturn}}#ef4444{{else}}#10b981{{end}};">{{percent .Metrics.TotalReturn}}</td>
<td class="days" style="text-align:right; color:#666;">{{.Metrics.Days}}</td>
</tr>
{{end}}{{end}}

{{define "weights"}}{{range .}}<tr>
<td class="event-type">{{.EventType.DisplayName}}</td>
<td class="weight" style="text-align:right;">{{fixed .Weight 4}}</td>
<td class="normalized" style="text-align:right;">{{fixed .NormalizedWeight 4}}</td>
<td class="percentage" style="text-align:right;">{{fixed .Percentage 2}}%</td>
</tr>
{{end}}{{end}}

{{define "ticker"}}{{range .}}<span class="ticker-item"><strong>{{.Name}}:</strong> <span style="color:{{if positive .Metrics.ARR}}#ef4444{{else}}#10b981{{end}}">{{percent .Metrics.ARR}}</span></span>
{{end}}{{end}}

{{define "buttons"}}{{range .}}<button class="event-type-button{{if .Selected}} active{{end}}" data-event-type="{{.Code}}" style="padding:0.75rem 1.5rem; border-radius:8px; border:2px solid #667eea; background:{{if .Selected}}#667eea{{else}}white{{end}}; color:{{if .Selected}}white{{else}}#667eea{{end}}; font-weight:bold; cursor:pointer; transition:all 0.2s;">{{.Label}}</button>
{{end}}{{end}}
`))

type rankingRow struct {
	Rank        string
	Name        string
	Strategy    string
	Highlighted bool
	Metrics     *contracts.Metrics
}

type eventRow struct {
	Name        string
	Highlighted bool
	Metrics     *contracts.Metrics
}

type button struct {
	Code     contracts.EventType
	Label    string
	Selected bool
}

// Renderer writes markup with the shared highlight rule
type Renderer struct {
	style *style.Styler
}

// NewRenderer creates a renderer
func NewRenderer(s *style.Styler) *Renderer {
	return &Renderer{style: s}
}

// RankingRows renders the home ranking table body, sorted by total return
func (r *Renderer) RankingRows(rows []contracts.ModelResult) (string, error) {
	sorted := ranking.ByTotalReturn(rows)

	data := make([]rankingRow, len(sorted))
	for i, row := range sorted {
		rank := fmt.Sprint(i + 1)
		if i < len(medalEmoji) {
			rank = medalEmoji[i]
		}
		data[i] = rankingRow{
			Rank:        rank,
			Name:        row.Name,
			Strategy:    row.Strategy,
			Highlighted: r.style.IsHighlighted(row.Name),
			Metrics:     row.Metrics,
		}
	}

	return execute("ranking", data)
}

// EventRows renders the per-event-type metrics table body in dataset order
func (r *Renderer) EventRows(rows []contracts.EventModelResult) (string, error) {
	data := make([]eventRow, len(rows))
	for i, row := range rows {
		data[i] = eventRow{
			Name:        row.ModelName,
			Highlighted: r.style.IsHighlighted(row.ModelName),
			Metrics:     row.Metrics,
		}
	}

	return execute("event", data)
}

// WeightRows renders the weights table body
func (r *Renderer) WeightRows(ws contracts.WeightSet) (string, error) {
	return execute("weights", ws)
}

// Ticker renders the scrolling ARR strip. The content is repeated so the
// CSS animation can loop without a gap.
func (r *Renderer) Ticker(rows []contracts.ModelResult) (string, error) {
	content, err := execute("ticker", rows)
	if err != nil {
		return "", err
	}
	return content + content, nil
}

// EventTypeButtons renders one button per listed event type
func (r *Renderer) EventTypeButtons(types []contracts.EventType, selected contracts.EventType) (string, error) {
	data := make([]button, len(types))
	for i, t := range types {
		data[i] = button{Code: t, Label: t.DisplayName(), Selected: t == selected}
	}

	return execute("buttons", data)
}

func execute(name string, data interface{}) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}
