package contracts

// HoldingMetric selects the metric plotted against holding period
type HoldingMetric string

const (
	HoldingTR  HoldingMetric = "TR"
	HoldingSR  HoldingMetric = "SR"
	HoldingMDD HoldingMetric = "MDD"
)

// HoldingMetrics returns the fixed three-value enumeration
func HoldingMetrics() []HoldingMetric {
	return []HoldingMetric{HoldingTR, HoldingSR, HoldingMDD}
}

// ParseHoldingMetric validates a raw metric key
func ParseHoldingMetric(s string) (HoldingMetric, bool) {
	switch m := HoldingMetric(s); m {
	case HoldingTR, HoldingSR, HoldingMDD:
		return m, true
	default:
		return "", false
	}
}

// HoldingPeriodData is the holding-period sensitivity sweep
type HoldingPeriodData struct {
	Models         []string                               `json:"models"`
	HoldingPeriods []int                                  `json:"holding_periods"`
	Data           map[string]map[HoldingMetric][]float64 `json:"data"`
}

// Values returns the sweep of one model for one metric, nil when missing
func (h *HoldingPeriodData) Values(model string, metric HoldingMetric) []float64 {
	if h == nil {
		return nil
	}
	byMetric, ok := h.Data[model]
	if !ok {
		return nil
	}
	return byMetric[metric]
}
