// Package dataset loads the precomputed JSON datasets into an immutable Store.
//
// Every slot is validated and defaulted here so renderers only ever ask
// "is this dataset present". A slot that failed to load stays nil.
package dataset

import (
	"github.com/wonny/eventlens/internal/contracts"
)

// Store holds every dataset slot of one page load. It is read-only once built.
type Store struct {
	summary    *contracts.SummaryStats
	unified    []contracts.ModelResult
	eventTypes contracts.EventTypeResults
	weights    contracts.WeightSet
	holding    *contracts.HoldingPeriodData
	accuracy   []contracts.ModelAccuracy
	nav        *contracts.NavSeries
	eventNav   contracts.EventNavSet

	present map[contracts.DatasetName]bool
	errs    map[contracts.DatasetName]error
}

// Status is the availability of one dataset
type Status struct {
	Name      contracts.DatasetName `json:"name"`
	File      string                `json:"file"`
	Available bool                  `json:"available"`
	Error     string                `json:"error,omitempty"`
}

func newStore() *Store {
	return &Store{
		present: make(map[contracts.DatasetName]bool),
		errs:    make(map[contracts.DatasetName]error),
	}
}

// Empty returns a store with every slot absent
func Empty() *Store {
	return newStore()
}

// Has reports whether the dataset loaded
func (s *Store) Has(name contracts.DatasetName) bool {
	return s != nil && s.present[name]
}

// Summary returns the header counters, nil when absent
func (s *Store) Summary() *contracts.SummaryStats {
	if s == nil {
		return nil
	}
	return s.summary
}

// Unified returns the overall backtest rows in dataset order, nil when absent
func (s *Store) Unified() []contracts.ModelResult {
	if s == nil {
		return nil
	}
	return s.unified
}

// EventTypeResults returns the per-event-type rows, nil when absent
func (s *Store) EventTypeResults() contracts.EventTypeResults {
	if s == nil {
		return nil
	}
	return s.eventTypes
}

// Weights returns the event weights in dataset order, nil when absent
func (s *Store) Weights() contracts.WeightSet {
	if s == nil {
		return nil
	}
	return s.weights
}

// Holding returns the holding-period sweep, nil when absent
func (s *Store) Holding() *contracts.HoldingPeriodData {
	if s == nil {
		return nil
	}
	return s.holding
}

// Accuracy returns per-model accuracy figures, nil when absent
func (s *Store) Accuracy() []contracts.ModelAccuracy {
	if s == nil {
		return nil
	}
	return s.accuracy
}

// AccuracyFor looks up the accuracy figures of one model
func (s *Store) AccuracyFor(model string) (contracts.ModelAccuracy, bool) {
	for _, a := range s.Accuracy() {
		if a.Model == model {
			return a, true
		}
	}
	return contracts.ModelAccuracy{}, false
}

// Nav returns the overall NAV history, nil when absent
func (s *Store) Nav() *contracts.NavSeries {
	if s == nil {
		return nil
	}
	return s.nav
}

// EventNav returns the per-event-type NAV histories, nil when absent
func (s *Store) EventNav() contracts.EventNavSet {
	if s == nil {
		return nil
	}
	return s.eventNav
}

// Status reports every dataset in fetch order
func (s *Store) Status() []Status {
	names := contracts.DatasetNames()
	out := make([]Status, 0, len(names))

	for _, name := range names {
		st := Status{Name: name, File: name.FileName(), Available: s.Has(name)}
		if s != nil {
			if err := s.errs[name]; err != nil {
				st.Error = err.Error()
			}
		}
		out = append(out, st)
	}
	return out
}

// Available counts the datasets that loaded
func (s *Store) Available() int {
	n := 0
	for _, st := range s.Status() {
		if st.Available {
			n++
		}
	}
	return n
}
