// Package chart builds ECharts option documents from dataset slices.
// Builders are pure: the same input always yields the same option.
package chart

// Option is an ECharts option document. The browser hands it to setOption unchanged.
type Option struct {
	Title    *Title     `json:"title,omitempty"`
	Tooltip  *Tooltip   `json:"tooltip,omitempty"`
	Legend   *Legend    `json:"legend,omitempty"`
	Grid     *Grid      `json:"grid,omitempty"`
	XAxis    *Axis      `json:"xAxis,omitempty"`
	YAxis    *Axis      `json:"yAxis,omitempty"`
	Radar    *Radar     `json:"radar,omitempty"`
	DataZoom []DataZoom `json:"dataZoom,omitempty"`
	Series   []Series   `json:"series"`
}

type Title struct {
	Text string `json:"text"`
	Left string `json:"left,omitempty"`
}

type Tooltip struct {
	Trigger string `json:"trigger"`
	Confine bool   `json:"confine,omitempty"`
}

type Legend struct {
	Type   string   `json:"type,omitempty"`
	Top    int      `json:"top,omitempty"`
	Bottom *int     `json:"bottom,omitempty"`
	Data   []string `json:"data,omitempty"`
}

type Grid struct {
	Left         string `json:"left"`
	Right        string `json:"right"`
	Bottom       string `json:"bottom"`
	ContainLabel bool   `json:"containLabel"`
}

// Axis covers both category and value axes
type Axis struct {
	Type      string     `json:"type,omitempty"`
	Name      string     `json:"name,omitempty"`
	Data      any        `json:"data,omitempty"`
	Scale     bool       `json:"scale,omitempty"`
	AxisLabel *AxisLabel `json:"axisLabel,omitempty"`
}

type AxisLabel struct {
	Rotate    int    `json:"rotate,omitempty"`
	FontSize  int    `json:"fontSize,omitempty"`
	Formatter string `json:"formatter,omitempty"`
}

type DataZoom struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type Radar struct {
	Indicator []Indicator `json:"indicator"`
}

type Indicator struct {
	Name string  `json:"name"`
	Max  float64 `json:"max"`
}

// Series is one line, bar, pie or radar series
type Series struct {
	Name       string     `json:"name,omitempty"`
	Type       string     `json:"type"`
	Data       any        `json:"data"`
	Smooth     bool       `json:"smooth,omitempty"`
	ShowSymbol *bool      `json:"showSymbol,omitempty"`
	SymbolSize int        `json:"symbolSize,omitempty"`
	Stack      string     `json:"stack,omitempty"`
	Radius     []string   `json:"radius,omitempty"`
	LineStyle  *LineStyle `json:"lineStyle,omitempty"`
	ItemStyle  *ItemStyle `json:"itemStyle,omitempty"`
	Z          int        `json:"z,omitempty"`
}

type LineStyle struct {
	Width   int     `json:"width,omitempty"`
	Type    string  `json:"type,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Color   string  `json:"color,omitempty"`
}

type ItemStyle struct {
	Color       string  `json:"color,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
	BorderWidth int     `json:"borderWidth,omitempty"`
	BorderType  string  `json:"borderType,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

// DataPoint is a styled value of a bar or pie series
type DataPoint struct {
	Name      string     `json:"name,omitempty"`
	Value     float64    `json:"value"`
	Champion  string     `json:"champion,omitempty"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
	Label     *Label     `json:"label,omitempty"`
}

type Label struct {
	Show      bool   `json:"show"`
	Position  string `json:"position,omitempty"`
	Formatter string `json:"formatter,omitempty"`
	FontSize  int    `json:"fontSize,omitempty"`
}

// RadarValue is one model polygon on the radar
type RadarValue struct {
	Name      string     `json:"name"`
	Value     []float64  `json:"value"`
	LineStyle *LineStyle `json:"lineStyle,omitempty"`
	Z         int        `json:"z,omitempty"`
}

// SeriesNames lists the names of the option's series in order
func (o *Option) SeriesNames() []string {
	if o == nil {
		return nil
	}
	names := make([]string, len(o.Series))
	for i, s := range o.Series {
		names[i] = s.Name
	}
	return names
}

// FindSeries returns the series with the given name
func (o *Option) FindSeries(name string) (Series, bool) {
	if o == nil {
		return Series{}, false
	}
	for _, s := range o.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
