package contracts

// Metrics holds the precomputed backtest metrics of one model run
type Metrics struct {
	ARR         float64 `json:"arr"`         // 연환산 수익률
	SR          float64 `json:"sr"`          // 샤프 비율
	MDD         float64 `json:"mdd"`         // 최대 낙폭
	CR          float64 `json:"cr"`          // 칼마 비율
	TotalReturn float64 `json:"totalReturn"` // 누적 수익률
	Days        int     `json:"days"`

	// Optional accuracy metrics
	DA  *float64 `json:"da,omitempty"`
	ETA *float64 `json:"eta,omitempty"`
}

// DirectionalAccuracy returns DA, zero when absent
func (m Metrics) DirectionalAccuracy() float64 {
	if m.DA == nil {
		return 0
	}
	return *m.DA
}

// EventTimingAccuracy returns ETA, zero when absent
func (m Metrics) EventTimingAccuracy() float64 {
	if m.ETA == nil {
		return 0
	}
	return *m.ETA
}

// ModelResult is one row of the overall backtest dataset
type ModelResult struct {
	Name     string   `json:"name"`
	Strategy string   `json:"strategy"`
	Metrics  *Metrics `json:"metrics"`
}

// EventModelResult is one row of a per-event-type backtest
type EventModelResult struct {
	ModelName string   `json:"modelName"`
	Metrics   *Metrics `json:"metrics"`
}

// EventTypeResults maps event-type code to its backtest rows
type EventTypeResults map[EventType][]EventModelResult

// SummaryStats feeds the header counters
type SummaryStats struct {
	TotalModels        int `json:"totalModels"`
	EventTypesWithData int `json:"eventTypesWithData"`
}

// ModelAccuracy holds calibration figures per model
type ModelAccuracy struct {
	Model string   `json:"model"`
	DA    *float64 `json:"da,omitempty"`
	ETA   *float64 `json:"eta,omitempty"`
}
