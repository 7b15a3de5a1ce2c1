package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/style"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

// Manager upgrades page connections and tracks live sessions
type Manager struct {
	cfg      *config.Config
	loader   *dataset.Loader
	styler   *style.Styler
	upgrader websocket.Upgrader
	logger   *logger.Logger
	metrics  *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager. m may be nil.
func NewManager(cfg *config.Config, loader *dataset.Loader, log *logger.Logger, m *metrics.Metrics) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:    cfg,
		loader: loader,
		styler: style.New(cfg.Style),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16 * 1024,
		},
		logger:   log,
		metrics:  m,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// ServeHTTP upgrades the request and serves the session until it ends
func (m *Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.ctx.Err() != nil {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	s := newSession(conn, m.cfg, m.loader, m.styler, m.logger, m.metrics)
	if !m.add(s) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	defer m.remove(s)

	s.run(m.ctx)
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown closes every session and waits for them to finish
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.cancel()
	open := len(m.sessions)
	m.mu.Unlock()

	m.logger.Infof("Closing %d sessions", open)

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// add registers s unless Shutdown has started; both run under mu
func (m *Manager) add(s *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Err() != nil {
		return false
	}
	m.sessions[s.id] = s
	m.wg.Add(1)

	if m.metrics != nil {
		m.metrics.ActiveSessions.Inc()
	}
	return true
}

func (m *Manager) remove(s *Session) {
	if m.metrics != nil {
		m.metrics.ActiveSessions.Dec()
	}

	m.mu.Lock()
	delete(m.sessions, s.id)
	m.mu.Unlock()
	m.wg.Done()
}
