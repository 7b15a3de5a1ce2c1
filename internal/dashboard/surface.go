package dashboard

import "sync"

// Surface is the DOM side of the UI boundary: markup and text regions,
// visibility and active flags. Chart regions go through the render engine.
type Surface interface {
	Exists(target string) bool
	SetHTML(target, html string)
	SetText(target, text string)
	SetVisible(target string, visible bool)
	SetActive(target string, active bool)
}

// MemorySurface records writes in memory
type MemorySurface struct {
	mu      sync.Mutex
	targets map[string]bool
	html    map[string]string
	text    map[string]string
	visible map[string]bool
	active  map[string]bool
	writes  map[string]int
}

// NewMemorySurface creates a surface with the given targets; none means all of AllTargets
func NewMemorySurface(targets ...string) *MemorySurface {
	if len(targets) == 0 {
		targets = AllTargets()
	}

	s := &MemorySurface{
		targets: make(map[string]bool, len(targets)),
		html:    make(map[string]string),
		text:    make(map[string]string),
		visible: make(map[string]bool),
		active:  make(map[string]bool),
		writes:  make(map[string]int),
	}
	for _, t := range targets {
		s.targets[t] = true
	}
	return s
}

// Remove drops a target, as when its region leaves the page
func (s *MemorySurface) Remove(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.targets, target)
}

func (s *MemorySurface) Exists(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targets[target]
}

func (s *MemorySurface) SetHTML(target, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.html[target] = html
	s.writes[target]++
}

func (s *MemorySurface) SetText(target, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text[target] = text
	s.writes[target]++
}

func (s *MemorySurface) SetVisible(target string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[target] = visible
	s.writes[target]++
}

func (s *MemorySurface) SetActive(target string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[target] = active
	s.writes[target]++
}

// HTML returns the markup last written to target
func (s *MemorySurface) HTML(target string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html[target]
}

// Text returns the text last written to target
func (s *MemorySurface) Text(target string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text[target]
}

// Visible returns the visibility last set on target
func (s *MemorySurface) Visible(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible[target]
}

// Active returns the active flag last set on target
func (s *MemorySurface) Active(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[target]
}

// Writes counts every write to target
func (s *MemorySurface) Writes(target string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[target]
}
