// Package datasettest provides a small, internally consistent set of dataset
// documents for tests in other packages.
package datasettest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/pkg/logger"
)

// Fixture facts tests assert against
const (
	HighlightedModel = "Janus-Q"
	NavDates         = 5

	// FinMA in nav_timeseries has one value short and is dropped on load
	MisalignedNavSeries = "FinMA"

	// financing has backtest rows but no event NAV entry
	EventWithoutNav = contracts.EventFinancing
)

var documents = map[contracts.DatasetName]string{
	contracts.DatasetSummaryStats: `{"totalModels": 8, "eventTypesWithData": 3}`,

	contracts.DatasetUnified: `[
  {"name": "Janus-Q", "strategy": "event-driven", "metrics": {"arr": 0.35, "sr": 2.1, "mdd": 0.08, "cr": 4.375, "totalReturn": 0.62, "days": 245, "da": 0.64, "eta": 0.58}},
  {"name": "GPT-4o-mini", "strategy": "event-driven", "metrics": {"arr": 0.12, "sr": 0.9, "mdd": 0.15, "cr": 0.8, "totalReturn": 0.21, "days": 245}},
  {"name": "FinMA", "strategy": "event-driven", "metrics": {"arr": 0.05, "sr": 0.3, "mdd": 0.2, "cr": 0.25, "totalReturn": 0.09, "days": 245}},
  {"name": "Qwen2.5-7B", "strategy": "event-driven", "metrics": {"arr": 0.18, "sr": 1.1, "mdd": 0.12, "cr": 1.5, "totalReturn": 0.21, "days": 245}},
  {"name": "DeepSeek-v3.1-nex-n1", "strategy": "event-driven", "metrics": {"arr": 0.22, "sr": 1.4, "mdd": 0.1, "cr": 2.2, "totalReturn": 0.35, "days": 245}},
  {"name": "Claude-3-Haiku", "strategy": "event-driven", "metrics": {"arr": 0.15, "sr": 1.0, "mdd": 0.11, "cr": 1.3636, "totalReturn": 0.26, "days": 245}},
  {"name": "CSI 300", "strategy": "benchmark", "metrics": {"arr": 0.03, "sr": 0.2, "mdd": 0.18, "cr": 0.1667, "totalReturn": 0.04, "days": 245}},
  {"name": "CSI 500", "strategy": "benchmark", "metrics": {"arr": -0.02, "sr": -0.1, "mdd": 0.25, "cr": -0.08, "totalReturn": -0.03, "days": 245}},
  {"name": "Broken-Model", "strategy": "event-driven"}
]`,

	contracts.DatasetEventType: `{
  "个人言行": [
    {"modelName": "GPT-4o-mini", "metrics": {"arr": 0.1, "sr": 0.8, "mdd": 0.1, "cr": 1.0, "totalReturn": 0.15, "days": 120}},
    {"modelName": "Janus-Q", "metrics": {"arr": 0.3, "sr": 1.9, "mdd": 0.07, "cr": 4.2857, "totalReturn": 0.4, "days": 120}},
    {"modelName": "FinMA", "metrics": {"arr": -0.05, "sr": -0.2, "mdd": 0.2, "cr": -0.25, "totalReturn": -0.06, "days": 120}},
    {"modelName": "Qwen2.5-7B", "metrics": {"arr": 0.12, "sr": 1.0, "mdd": 0.09, "cr": 1.3333, "totalReturn": 0.18, "days": 120}}
  ],
  "分红转送": [
    {"modelName": "Qwen2.5-7B", "metrics": {"arr": 0.2, "sr": 1.5, "mdd": 0.05, "cr": 4.0, "totalReturn": 0.25, "days": 90}},
    {"modelName": "Janus-Q", "metrics": {"arr": 0.18, "sr": 1.4, "mdd": 0.06, "cr": 3.0, "totalReturn": 0.22, "days": 90}}
  ],
  "融资": [
    {"modelName": "Janus-Q", "metrics": {"arr": 0.25, "sr": 1.7, "mdd": 0.09, "cr": 2.7778, "totalReturn": 0.31, "days": 60}},
    {"modelName": "GPT-4o-mini", "metrics": {"arr": 0.08, "sr": 0.6, "mdd": 0.12, "cr": 0.6667, "totalReturn": 0.1, "days": 60}},
    {"modelName": "DeepSeek-v3.1-nex-n1", "metrics": {"arr": 0.14, "sr": 1.1, "mdd": 0.1, "cr": 1.4, "totalReturn": 0.17, "days": 60}}
  ],
  "行业": []
}`,

	contracts.DatasetEventWeights: `[
  {"eventType": "个人言行", "weight": 0.42, "normalizedWeight": 0.35, "percentage": 35.0},
  {"eventType": "分红转送", "weight": 0.3, "normalizedWeight": 0.25, "percentage": 25.0},
  {"eventType": "融资", "weight": 0.24, "normalizedWeight": 0.2, "percentage": 20.0},
  {"eventType": "行业", "weight": 0.24, "normalizedWeight": 0.2, "percentage": 20.0}
]`,

	contracts.DatasetHoldingPeriod: `{
  "models": ["Janus-Q", "GPT-4o-mini"],
  "holding_periods": [1, 3, 5, 10],
  "data": {
    "Janus-Q": {"TR": [0.2, 0.35, 0.5, 0.62], "SR": [1.2, 1.6, 1.9, 2.1], "MDD": [0.05, 0.06, 0.07, 0.08]},
    "GPT-4o-mini": {"TR": [0.05, 0.1, 0.15, 0.21], "SR": [0.4, 0.6, 0.8, 0.9], "MDD": [0.1, 0.12, 0.14, 0.15]}
  }
}`,

	contracts.DatasetModelAccuracy: `[
  {"model": "Janus-Q", "da": 0.64, "eta": 0.58},
  {"model": "DeepSeek-v3.1-nex-n1", "da": 0.57, "eta": 0.49},
  {"model": "Qwen2.5-7B", "da": 0.52}
]`,

	contracts.DatasetNavTimeseries: `{
  "dates": ["2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-08"],
  "series": {
    "Janus-Q": [1.0, 1.02, 1.05, 1.04, 1.08],
    "GPT-4o-mini": [1.0, 1.01, 1.0, 1.02, 1.03],
    "FinMA": [1.0, 0.99, 1.0, 1.01],
    "CSI 300": [1.0, 0.99, 1.0, 0.98, 0.99]
  }
}`,

	contracts.DatasetEventTypeNav: `{
  "Personal Behavior": {
    "dates": ["2024-01-02", "2024-01-03", "2024-01-04"],
    "series": {"Janus-Q": [1.0, 1.03, 1.06], "GPT-4o-mini": [1.0, 1.01, 1.02], "CSI 300": [1.0, 0.99, 1.0]}
  },
  "Dividend": {
    "dates": ["2024-02-01", "2024-02-02"],
    "series": {"Qwen2.5-7B": [1.0, 1.04], "CSI 500": [1.0, 0.98]}
  }
}`,
}

// Documents returns the raw fixture documents, without the omitted datasets
func Documents(omit ...contracts.DatasetName) map[contracts.DatasetName][]byte {
	skip := make(map[contracts.DatasetName]bool, len(omit))
	for _, n := range omit {
		skip[n] = true
	}

	docs := make(map[contracts.DatasetName][]byte, len(documents))
	for name, doc := range documents {
		if skip[name] {
			continue
		}
		docs[name] = []byte(doc)
	}
	return docs
}

// Store decodes the fixture into a Store, without the omitted datasets
func Store(t testing.TB, omit ...contracts.DatasetName) *dataset.Store {
	t.Helper()

	store, err := dataset.FromDocuments(Documents(omit...), logger.Nop())
	require.NoError(t, err)
	return store
}

// WriteDir writes the fixture files into a temporary directory and returns it
func WriteDir(t testing.TB, omit ...contracts.DatasetName) string {
	t.Helper()

	dir := t.TempDir()
	for name, doc := range Documents(omit...) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name.FileName()), doc, 0o644))
	}
	return dir
}
