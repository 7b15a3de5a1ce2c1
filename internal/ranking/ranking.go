// Package ranking orders models and tallies per-category medals.
// Every sort here is stable: equal keys keep dataset order.
package ranking

import (
	"sort"

	"github.com/wonny/eventlens/internal/contracts"
)

// MedalsPerCategory is how many places earn a medal in one event type
const MedalsPerCategory = 3

// RadarSize is the number of models shown on the performance radar
const RadarSize = 5

// ByTotalReturn returns a copy of rows sorted by total return, descending
func ByTotalReturn(rows []contracts.ModelResult) []contracts.ModelResult {
	out := make([]contracts.ModelResult, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Metrics.TotalReturn > out[j].Metrics.TotalReturn
	})
	return out
}

// EventRowsByTotalReturn is ByTotalReturn for per-event-type rows
func EventRowsByTotalReturn(rows []contracts.EventModelResult) []contracts.EventModelResult {
	out := make([]contracts.EventModelResult, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Metrics.TotalReturn > out[j].Metrics.TotalReturn
	})
	return out
}

// TopByARR returns the n best rows by ARR, skipping names for which exclude is true
func TopByARR(rows []contracts.ModelResult, n int, exclude func(name string) bool) []contracts.ModelResult {
	var candidates []contracts.ModelResult
	for _, r := range rows {
		if exclude != nil && exclude(r.Name) {
			continue
		}
		candidates = append(candidates, r)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Metrics.ARR > candidates[j].Metrics.ARR
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
