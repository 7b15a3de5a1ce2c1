package session

import (
	"github.com/wonny/eventlens/internal/render"
)

// emitter queues a command for the browser
type emitter func(Command)

// remoteEngine mirrors the browser's chart registry. Every call becomes a
// command; the registry itself lives on the session loop.
type remoteEngine struct {
	emit   emitter
	nextID int
	bound  map[string]*remoteChart
}

type remoteChart struct {
	engine   *remoteEngine
	id       int
	target   string
	disposed bool
}

func newRemoteEngine(emit emitter) *remoteEngine {
	return &remoteEngine{emit: emit, bound: make(map[string]*remoteChart)}
}

func (e *remoteEngine) Init(target string) (render.Handle, error) {
	e.nextID++
	c := &remoteChart{engine: e, id: e.nextID, target: target}
	e.bound[target] = c
	e.emit(Command{Op: OpInit, Target: target, Instance: c.id})
	return c, nil
}

func (e *remoteEngine) InstanceByTarget(target string) render.Handle {
	if c, ok := e.bound[target]; ok {
		return c
	}
	return nil
}

func (c *remoteChart) SetOption(option any, replace bool) error {
	if c.disposed {
		return render.ErrDisposed
	}
	c.engine.emit(Command{Op: OpSetOption, Target: c.target, Instance: c.id, Option: option, Replace: replace})
	return nil
}

func (c *remoteChart) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	if c.engine.bound[c.target] == c {
		delete(c.engine.bound, c.target)
	}
	c.engine.emit(Command{Op: OpDispose, Target: c.target, Instance: c.id})
}

func (c *remoteChart) Resize() {
	if c.disposed {
		return
	}
	c.engine.emit(Command{Op: OpResize, Target: c.target, Instance: c.id})
}

// remoteSurface forwards DOM writes for the targets the page announced
type remoteSurface struct {
	emit    emitter
	targets map[string]bool
}

func newRemoteSurface(emit emitter) *remoteSurface {
	return &remoteSurface{emit: emit, targets: make(map[string]bool)}
}

func (s *remoteSurface) setTargets(targets []string) {
	s.targets = make(map[string]bool, len(targets))
	for _, t := range targets {
		s.targets[t] = true
	}
}

func (s *remoteSurface) Exists(target string) bool {
	return s.targets[target]
}

func (s *remoteSurface) SetHTML(target, html string) {
	s.emit(Command{Op: OpHTML, Target: target, Content: &html})
}

func (s *remoteSurface) SetText(target, text string) {
	s.emit(Command{Op: OpText, Target: target, Content: &text})
}

func (s *remoteSurface) SetVisible(target string, visible bool) {
	s.emit(Command{Op: OpVisible, Target: target, Flag: &visible})
}

func (s *remoteSurface) SetActive(target string, active bool) {
	s.emit(Command{Op: OpActive, Target: target, Flag: &active})
}
