package render

import "errors"

// ErrNoEngine is returned when a Coordinator has no chart engine bound
var ErrNoEngine = errors.New("render: no chart engine")

// ErrDisposed is returned when drawing on a disposed chart instance
var ErrDisposed = errors.New("render: chart instance disposed")

// Handle is one chart-engine instance bound to a view target
type Handle interface {
	// SetOption hands a chart option document to the engine.
	// replace=true drops every series of the previous option.
	SetOption(option any, replace bool) error
	Dispose()
	Resize()
}

// Engine is the chart-engine boundary (ECharts in the browser, in-memory in tests)
type Engine interface {
	Init(target string) (Handle, error)

	// InstanceByTarget returns the instance bound to target, or nil
	InstanceByTarget(target string) Handle
}
