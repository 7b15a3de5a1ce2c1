// Package style holds the color and emphasis rules shared by every chart and table.
//
// Highlight and benchmark detection are plain string matches against display
// names (substring and prefix). A model whose name happens to contain the
// marker or start with the prefix is styled accordingly.
package style

import (
	"strings"

	"github.com/wonny/eventlens/pkg/config"
)

// ⭐ SSOT: 모델 색상은 여기서만 정의
var modelColors = map[string]string{
	"Janus-Q":              "#f59e0b",
	"ChatTS-14B":           "#3b82f6",
	"Claude-3-Haiku":       "#8b5cf6",
	"DISC-FinLLM":          "#10b981",
	"DeepSeek-v3.1-nex-n1": "#ef4444",
	"FinMA":                "#ec4899",
	"GPT-4o-mini":          "#06b6d4",
	"Gemini-2.5-flash":     "#84cc16",
	"Grok3-mini-beta":      "#f97316",
	"QwQ-32B":              "#6366f1",
	"Qwen2.5-7B":           "#14b8a6",
	"Stock-Chain":          "#f43f5e",
	"Time-MQA":             "#a855f7",
	"TimeMaster":           "#22c55e",
	"CSI 300":              "#6b7280",
	"CSI 500":              "#9ca3af",
	"CSI 1000":             "#d1d5db",
}

var palette = []string{
	"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe",
	"#00f2fe", "#43e97b", "#38f9d7", "#fa709a", "#fee140",
}

// Fixed colors used outside the per-model palette
const (
	HighlightColor = "#f59e0b"
	PositiveColor  = "#ef4444" // 상승: 빨강
	NegativeColor  = "#10b981" // 하락: 초록
	MutedColor     = "#666"
	AccentColor    = "#667eea"
	GoldColor      = "#FFD700"
	SilverColor    = "#C0C0C0"
	BronzeColor    = "#CD7F32"
)

// Line types
const (
	LineSolid  = "solid"
	LineDashed = "dashed"
)

// Z levels: benchmarks sit at the bottom, the highlighted model on top
const (
	ZBenchmark   = 1
	ZNormal      = 10
	ZHighlighted = 100
)

// Emphasis is the uniform per-series styling derived from a model name
type Emphasis struct {
	Width    int
	LineType string
	Z        int
	Opacity  float64
}

// Styler applies the highlight and benchmark rules
type Styler struct {
	marker string // lower-cased
	prefix string
}

// New creates a Styler from configuration
func New(cfg config.StyleConfig) *Styler {
	return &Styler{
		marker: strings.ToLower(cfg.HighlightMarker),
		prefix: cfg.BenchmarkPrefix,
	}
}

// Default returns the Styler for the default configuration
func Default() *Styler {
	return New(config.Default().Style)
}

// IsHighlighted reports whether name contains the marker, case-insensitively
func (s *Styler) IsHighlighted(name string) bool {
	return strings.Contains(strings.ToLower(name), s.marker)
}

// IsBenchmark reports whether name starts with the benchmark prefix
func (s *Styler) IsBenchmark(name string) bool {
	return strings.HasPrefix(name, s.prefix)
}

// Emphasis returns the series styling for name.
// The benchmark rule decides line type and z even when the name is also highlighted.
func (s *Styler) Emphasis(name string) Emphasis {
	e := Emphasis{Width: 2, LineType: LineSolid, Z: ZNormal, Opacity: 1}

	if s.IsHighlighted(name) {
		e.Width = 4
		e.Z = ZHighlighted
	}
	if s.IsBenchmark(name) {
		e.LineType = LineDashed
		e.Z = ZBenchmark
		e.Opacity = 0.6
	}

	return e
}

// ColorFor returns the fixed color of a known model.
// ok is false for unknown names; callers then let the engine pick or use PaletteColor.
func ColorFor(name string) (color string, ok bool) {
	color, ok = modelColors[name]
	return color, ok
}

// ColorOr returns the model color, falling back to the palette entry at index i
func ColorOr(name string, i int) string {
	if c, ok := ColorFor(name); ok {
		return c
	}
	return PaletteColor(i)
}

// PaletteColor cycles through the chart palette
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// ReturnColor colors a return value: red when non-negative, green otherwise
func ReturnColor(v float64) string {
	if v >= 0 {
		return PositiveColor
	}
	return NegativeColor
}
