package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/pkg/logger"
)

// FromDocuments decodes raw documents into a Store. Names missing from docs
// stay absent without an error. The returned Store is never nil; the error
// joins a *LoadError for every document that failed to decode.
func FromDocuments(docs map[contracts.DatasetName][]byte, log *logger.Logger) (*Store, error) {
	s := newStore()

	var errs []error
	for _, name := range contracts.DatasetNames() {
		body, ok := docs[name]
		if !ok {
			continue
		}
		if err := s.decode(name, body, log); err != nil {
			s.fail(name, err)
			errs = append(errs, &LoadError{Dataset: name, Err: err})
		}
	}

	return s, errors.Join(errs...)
}

func (s *Store) fail(name contracts.DatasetName, err error) {
	s.present[name] = false
	s.errs[name] = err
}

// decode validates one document and fills its slot
func (s *Store) decode(name contracts.DatasetName, body []byte, log *logger.Logger) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrEmptyDocument
	}

	dlog := log.WithField("dataset", string(name))

	switch name {
	case contracts.DatasetSummaryStats:
		var v contracts.SummaryStats
		if err := unmarshal(trimmed, &v); err != nil {
			return err
		}
		s.summary = &v

	case contracts.DatasetUnified:
		var rows []contracts.ModelResult
		if err := unmarshal(trimmed, &rows); err != nil {
			return err
		}
		s.unified = keepWithMetrics(rows, dlog)

	case contracts.DatasetEventType:
		var raw map[contracts.EventType][]contracts.EventModelResult
		if err := unmarshal(trimmed, &raw); err != nil {
			return err
		}
		s.eventTypes = make(contracts.EventTypeResults, len(raw))
		for et, rows := range raw {
			if !et.Valid() {
				dlog.WithField("event_type", string(et)).Warn("Unknown event type kept but never listed")
			}
			s.eventTypes[et] = keepEventRowsWithMetrics(et, rows, dlog)
		}

	case contracts.DatasetEventWeights:
		var ws contracts.WeightSet
		if err := unmarshal(trimmed, &ws); err != nil {
			return err
		}
		if ws == nil {
			ws = contracts.WeightSet{}
		}
		if !ws.HasDerived() {
			ws = ws.Normalize()
		}
		if !ws.Balanced() {
			dlog.WithField("percentage_total", ws.PercentageTotal()).Warn("Event weight percentages do not sum to 100")
		}
		s.weights = ws

	case contracts.DatasetHoldingPeriod:
		var h contracts.HoldingPeriodData
		if err := unmarshal(trimmed, &h); err != nil {
			return err
		}
		dropMisalignedSweeps(&h, dlog)
		s.holding = &h

	case contracts.DatasetModelAccuracy:
		var acc []contracts.ModelAccuracy
		if err := unmarshal(trimmed, &acc); err != nil {
			return err
		}
		if acc == nil {
			acc = []contracts.ModelAccuracy{}
		}
		s.accuracy = acc

	case contracts.DatasetNavTimeseries:
		var nav contracts.NavSeries
		if err := unmarshal(trimmed, &nav); err != nil {
			return err
		}
		logDropped(dlog, "", nav.DropMisaligned())
		s.nav = &nav

	case contracts.DatasetEventTypeNav:
		var set contracts.EventNavSet
		if err := unmarshal(trimmed, &set); err != nil {
			return err
		}
		for key, nav := range set {
			logDropped(dlog, key, nav.DropMisaligned())
			set[key] = nav
		}
		s.eventNav = set

	default:
		return fmt.Errorf("unknown dataset")
	}

	s.present[name] = true
	return nil
}

func unmarshal(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func keepWithMetrics(rows []contracts.ModelResult, log *logger.Logger) []contracts.ModelResult {
	out := make([]contracts.ModelResult, 0, len(rows))
	for _, r := range rows {
		if r.Metrics == nil {
			log.WithField("model", r.Name).Warn("Row without metrics dropped")
			continue
		}
		out = append(out, r)
	}
	return out
}

func keepEventRowsWithMetrics(et contracts.EventType, rows []contracts.EventModelResult, log *logger.Logger) []contracts.EventModelResult {
	out := make([]contracts.EventModelResult, 0, len(rows))
	for _, r := range rows {
		if r.Metrics == nil {
			log.WithFields(map[string]interface{}{
				"event_type": string(et),
				"model":      r.ModelName,
			}).Warn("Row without metrics dropped")
			continue
		}
		out = append(out, r)
	}
	return out
}

// dropMisalignedSweeps removes metric sweeps whose length differs from the holding periods
func dropMisalignedSweeps(h *contracts.HoldingPeriodData, log *logger.Logger) {
	for model, byMetric := range h.Data {
		for metric, values := range byMetric {
			if len(values) != len(h.HoldingPeriods) {
				log.WithFields(map[string]interface{}{
					"model":    model,
					"metric":   string(metric),
					"expected": len(h.HoldingPeriods),
					"got":      len(values),
				}).Warn("Misaligned holding-period sweep dropped")
				delete(byMetric, metric)
			}
		}
	}
}

func logDropped(log *logger.Logger, key string, dropped []string) {
	for _, name := range dropped {
		log.WithFields(map[string]interface{}{
			"series": name,
			"key":    key,
		}).Warn("NAV series not aligned with dates dropped")
	}
}
