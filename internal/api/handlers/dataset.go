package handlers

import (
	"net/http"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/ranking"
	"github.com/wonny/eventlens/pkg/logger"
)

// DatasetHandler reports dataset availability
// ⭐ SSOT: 데이터셋 API 핸들러는 이 구조체에서만
type DatasetHandler struct {
	loader *dataset.Loader
	source dataset.Source
	root   string
	logger *logger.Logger
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(loader *dataset.Loader, source dataset.Source, root string, log *logger.Logger) *DatasetHandler {
	return &DatasetHandler{
		loader: loader,
		source: source,
		root:   root,
		logger: log,
	}
}

// DatasetsResponse is the body of GET /api/datasets
type DatasetsResponse struct {
	Root      string           `json:"root"`
	Available int              `json:"available"`
	Total     int              `json:"total"`
	Datasets  []dataset.Status `json:"datasets"`
}

// GetDatasets loads every dataset and reports which ones are usable
// GET /api/datasets
func (h *DatasetHandler) GetDatasets(w http.ResponseWriter, r *http.Request) {
	store, err := h.loader.LoadAll(r.Context())
	if err != nil {
		h.logger.WithError(err).Debug("Partial dataset load")
	}

	statuses := store.Status()
	for i := range statuses {
		statuses[i].File = h.source.Location(statuses[i].Name)
	}

	respondJSON(w, http.StatusOK, DatasetsResponse{
		Root:      h.root,
		Available: store.Available(),
		Total:     len(contracts.DatasetNames()),
		Datasets:  statuses,
	})
}

// MedalRow is one model of the medal standings
type MedalRow struct {
	Model  string `json:"model"`
	Gold   int    `json:"gold"`
	Silver int    `json:"silver"`
	Bronze int    `json:"bronze"`
	Score  int    `json:"score"`
}

// GetMedals returns the per-event-type medal standings
// GET /api/rankings/medals
func (h *DatasetHandler) GetMedals(w http.ResponseWriter, r *http.Request) {
	store, err := h.loader.Load(r.Context(), contracts.DatasetEventType)
	if err != nil || store.EventTypeResults() == nil {
		respondError(w, http.StatusServiceUnavailable, "Event type backtest unavailable")
		return
	}

	tally := ranking.TallyMedals(store.EventTypeResults())
	rows := make([]MedalRow, 0, len(tally.Medals))
	for _, model := range tally.ByScore() {
		m := tally.Medals[model]
		rows = append(rows, MedalRow{
			Model:  model,
			Gold:   m.Gold,
			Silver: m.Silver,
			Bronze: m.Bronze,
			Score:  m.Score(),
		})
	}

	respondJSON(w, http.StatusOK, rows)
}
