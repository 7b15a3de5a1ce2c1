package contracts

import "math"

// WeightTolerance is the allowed drift of the percentage total from 100
const WeightTolerance = 0.5

// WeightEntry is the historical weight of one event type.
// NormalizedWeight and Percentage come from upstream and are never recomputed here.
type WeightEntry struct {
	EventType        EventType `json:"eventType"`
	Weight           float64   `json:"weight"`
	NormalizedWeight float64   `json:"normalizedWeight"`
	Percentage       float64   `json:"percentage"`
}

// WeightSet is the ordered event weights dataset
type WeightSet []WeightEntry

// PercentageTotal sums the percentage column
func (ws WeightSet) PercentageTotal() float64 {
	total := 0.0
	for _, w := range ws {
		total += w.Percentage
	}
	return total
}

// Balanced reports whether percentages sum to 100 within WeightTolerance
func (ws WeightSet) Balanced() bool {
	return math.Abs(ws.PercentageTotal()-100) <= WeightTolerance
}

// HasDerived reports whether upstream supplied the normalized and percentage columns
func (ws WeightSet) HasDerived() bool {
	for _, w := range ws {
		if w.NormalizedWeight != 0 || w.Percentage != 0 {
			return true
		}
	}
	return false
}

// Normalize returns a copy with NormalizedWeight and Percentage derived from Weight.
// Only used when upstream omitted both columns; non-positive totals leave them zero.
func (ws WeightSet) Normalize() WeightSet {
	out := make(WeightSet, len(ws))
	copy(out, ws)

	total := 0.0
	for _, w := range ws {
		total += w.Weight
	}
	if total <= 0 {
		return out
	}

	for i := range out {
		out[i].NormalizedWeight = out[i].Weight / total
		out[i].Percentage = out[i].NormalizedWeight * 100
	}
	return out
}
