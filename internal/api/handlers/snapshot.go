package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/snapshot"
	"github.com/wonny/eventlens/pkg/logger"
)

// SnapshotHandler serves NAV charts as PNG
type SnapshotHandler struct {
	loader   *dataset.Loader
	renderer *snapshot.Renderer
	logger   *logger.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(loader *dataset.Loader, renderer *snapshot.Renderer, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		loader:   loader,
		renderer: renderer,
		logger:   log,
	}
}

// GetNavPNG renders the overall NAV, or one event type's NAV when eventType is set
// GET /api/snapshots/nav.png?eventType=<code>
func (h *SnapshotHandler) GetNavPNG(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("eventType")

	nav, title, status, msg := h.resolve(r, code)
	if status != http.StatusOK {
		respondError(w, status, msg)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.NavPNG(&buf, title, nav); err != nil {
		if errors.Is(err, snapshot.ErrNotEnoughPoints) || errors.Is(err, snapshot.ErrNoSeries) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to render snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to render snapshot")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *SnapshotHandler) resolve(r *http.Request, code string) (contracts.NavSeries, string, int, string) {
	if code == "" {
		store, err := h.loader.Load(r.Context(), contracts.DatasetNavTimeseries)
		if err != nil || store.Nav() == nil {
			return contracts.NavSeries{}, "", http.StatusServiceUnavailable, "NAV timeseries unavailable"
		}
		return *store.Nav(), "Net Asset Value", http.StatusOK, ""
	}

	et, ok := contracts.ParseEventType(code)
	if !ok {
		return contracts.NavSeries{}, "", http.StatusBadRequest, "Unknown event type"
	}

	store, err := h.loader.Load(r.Context(), contracts.DatasetEventTypeNav)
	if err != nil || store.EventNav() == nil {
		return contracts.NavSeries{}, "", http.StatusServiceUnavailable, "Event type NAV timeseries unavailable"
	}

	nav, ok := store.EventNav().For(et)
	if !ok {
		return contracts.NavSeries{}, "", http.StatusNotFound, "No NAV data for event type"
	}
	return nav, et.DisplayName() + " - Net Asset Value", http.StatusOK, ""
}
