package api

import (
	"net/http"

	"github.com/wonny/eventlens/internal/api/handlers"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/session"
	"github.com/wonny/eventlens/internal/snapshot"
	"github.com/wonny/eventlens/internal/style"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

// App is the wired dashboard server
type App struct {
	Router   http.Handler
	Sessions *session.Manager
}

// NewApp wires sources, handlers and the session manager. m may be nil.
func NewApp(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) *App {
	source := dataset.NewSource(cfg, log)
	loader := dataset.NewLoader(source, log, m)
	sessions := session.NewManager(cfg, loader, log, m)

	routes := Routes{
		Sessions:  sessions,
		Datasets:  handlers.NewDatasetHandler(loader, source, cfg.DataRoot(), log),
		Snapshots: handlers.NewSnapshotHandler(loader, snapshot.New(style.New(cfg.Style)), log),
	}
	if cfg.MetricsEnabled && m != nil {
		routes.Metrics = m.Handler()
	}

	return &App{
		Router:   NewRouter(routes, log),
		Sessions: sessions,
	}
}
