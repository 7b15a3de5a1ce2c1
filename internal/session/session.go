// Package session binds one browser page to its own dashboard over a WebSocket.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/wonny/eventlens/internal/dashboard"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/render"
	"github.com/wonny/eventlens/internal/style"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Session is one connected page.
// ⭐ SSOT: 대시보드 상태는 세션 루프 고루틴에서만 변경됨
type Session struct {
	id      string
	conn    *websocket.Conn
	send    chan Command
	loop    *render.Loop
	surface *remoteSurface
	dash    *dashboard.Dashboard
	loader  *dataset.Loader
	limiter *rate.Limiter
	logger  *logger.Logger
	metrics *metrics.Metrics

	helloSeen bool // read goroutine only

	closeOnce sync.Once
	cancel    context.CancelFunc
}

func newSession(conn *websocket.Conn, cfg *config.Config, loader *dataset.Loader, styler *style.Styler, log *logger.Logger, m *metrics.Metrics) *Session {
	id := uuid.New().String()
	s := &Session{
		id:      id,
		conn:    conn,
		send:    make(chan Command, sendBuffer),
		loader:  loader,
		limiter: rate.NewLimiter(rate.Limit(cfg.Session.EventRate), cfg.Session.EventBurst),
		logger:  log.WithSession(id),
		metrics: m,
	}

	s.loop = render.NewLoop(s.logger)
	engine := newRemoteEngine(s.emit)
	s.surface = newRemoteSurface(s.emit)
	coord := render.NewCoordinator(engine, render.NewLoopScheduler(s.loop), s.logger, m)
	s.dash = dashboard.New(coord, s.surface, styler, cfg.Render, s.logger, m)

	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// run serves the connection until it closes or ctx is done
func (s *Session) run(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	defer s.close()

	go func() {
		_ = s.loop.Run(ctx)
	}()
	go s.writePump(ctx)
	go func() {
		<-ctx.Done()
		s.close()
	}()

	s.logger.Info("Session started")
	s.readPump(ctx)
	s.logger.Info("Session ended")
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		_ = s.conn.Close()
	})
}

// emit queues a command. A client that cannot keep up is disconnected
// rather than allowed to block the loop.
func (s *Session) emit(cmd Command) {
	select {
	case s.send <- cmd:
	default:
		s.logger.WithField("op", cmd.Op).Warnf("Send buffer full (%d), closing session", sendBuffer)
		s.close()
	}
}

func (s *Session) emitError(err error) {
	s.emit(Command{Op: OpError, Message: err.Error()})
}

func (s *Session) readPump(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).Warn("WebSocket read error")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.countEvent(eventMalformed)
			if !s.allow() {
				continue
			}
			s.dropped("invalid")
			s.emitError(fmt.Errorf("invalid message: %w", err))
			continue
		}

		s.handle(ctx, msg)
	}
}

// handle dispatches one client message onto the loop
func (s *Session) handle(ctx context.Context, msg ClientMessage) {
	s.countEvent(msg.Type)

	if msg.Type == MsgHello {
		if s.helloSeen {
			s.dropped("duplicate_hello")
			return
		}
		s.helloSeen = true
		s.hello(ctx, msg)
		return
	}

	if !s.allow() {
		return
	}

	var action func() error
	switch msg.Type {
	case MsgNavigate:
		action = func() error { return s.dash.ShowPage(msg.Page) }
	case MsgSelectEventType:
		action = func() error { return s.dash.SelectEventType(msg.Key) }
	case MsgSelectHoldingMetric:
		action = func() error { return s.dash.SelectHoldingMetric(msg.Metric) }
	default:
		s.dropped("unknown_type")
		s.emitError(fmt.Errorf("unknown message type %q", msg.Type))
		return
	}

	s.loop.Post(func() {
		if err := action(); err != nil {
			s.dropped("invalid")
			s.emitError(err)
		}
	})
}

// hello registers the page's targets and starts the dataset load
func (s *Session) hello(ctx context.Context, msg ClientMessage) {
	s.logger.WithFields(map[string]interface{}{
		"targets": len(msg.Targets),
		"page":    msg.Page,
	}).Debug("Hello received")

	s.loop.Post(func() {
		s.surface.setTargets(msg.Targets)
		if msg.Page != "" {
			if err := s.dash.ShowPage(msg.Page); err != nil {
				s.emitError(err)
			}
		}
	})

	go func() {
		store, err := s.loader.LoadAll(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("Some datasets unavailable")
		}
		s.loop.Post(func() {
			s.dash.OnLoaded(store)
		})
	}()
}

func (s *Session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(writeWait))
			return
		case cmd := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(cmd); err != nil {
				s.logger.WithError(err).Warn("WebSocket write failed")
				return
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				s.logger.WithError(err).Debug("Ping failed")
				return
			}
		}
	}
}

// allow takes a token from the session limiter and counts the drop when none is left
func (s *Session) allow() bool {
	if s.limiter.Allow() {
		return true
	}
	s.dropped("rate_limited")
	return false
}

// countEvent records a UI event. Types outside the protocol share one label.
func (s *Session) countEvent(msgType string) {
	if s.metrics == nil {
		return
	}
	if !knownMessage(msgType) && msgType != eventMalformed {
		msgType = eventUnknown
	}
	s.metrics.UIEvents.WithLabelValues(msgType).Inc()
}

func (s *Session) dropped(reason string) {
	if s.metrics != nil {
		s.metrics.UIEventsDropped.WithLabelValues(reason).Inc()
	}
}
