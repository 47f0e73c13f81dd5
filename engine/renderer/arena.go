package renderer

import "go.uber.org/zap"

// Releaser is any GPU object with an explicit release.
type Releaser interface {
	Release()
}

type arenaEntry struct {
	label string
	r     Releaser
}

// Arena records GPU resources in creation order and releases them in reverse, so views go
// before the textures they were created from.
type Arena struct {
	logger  *zap.Logger
	entries []arenaEntry
}

// NewArena creates an empty arena.
//
// Parameters:
//   - logger: receives a debug line per released resource; nil disables logging
//
// Returns:
//   - *Arena: the arena
func NewArena(logger *zap.Logger) *Arena {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Arena{logger: logger}
}

// Track appends r to the arena. Nil resources are ignored.
func (a *Arena) Track(label string, r Releaser) {
	if r == nil {
		return
	}
	a.entries = append(a.entries, arenaEntry{label: label, r: r})
}

// Len returns the number of tracked resources.
func (a *Arena) Len() int {
	return len(a.entries)
}

// Release releases every tracked resource, newest first, and empties the arena.
func (a *Arena) Release() {
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		a.logger.Debug("releasing", zap.String("resource", e.label))
		e.r.Release()
	}
	a.entries = a.entries[:0]
}
