package session

import (
	"context"
	"sync"

	"github.com/vk/pipelayer/internal/ctxlog"
	"github.com/vk/pipelayer/internal/layering"
	"github.com/vk/pipelayer/internal/overlay"
	"github.com/vk/pipelayer/internal/pipeline"
	"github.com/vk/pipelayer/internal/validate"
)

// Warnings reports the step ids that could not be placed cleanly, for the
// caller to surface however it sees fit.
type Warnings struct {
	Orphaned   []string `json:"orphaned,omitempty"`
	Duplicate  []string `json:"duplicate,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Empty reports whether the warnings carry nothing worth surfacing.
func (w Warnings) Empty() bool {
	return len(w.Orphaned) == 0 && len(w.Duplicate) == 0 && len(w.Unresolved) == 0
}

// Session is a thread-safe holder for the current canonical graph and its
// display snapshot. All mutation happens under one lock and swaps whole
// values; previously returned snapshots are never touched again.
type Session struct {
	mu       sync.RWMutex
	graph    *layering.Graph
	display  *overlay.Graph
	warnings Warnings
}

// New creates an empty session. Until the first Reload, snapshots are empty
// graphs rather than nil, so callers can render unconditionally.
func New() *Session {
	return &Session{
		graph:   &layering.Graph{},
		display: &overlay.Graph{},
	}
}

// Reload replaces the definition set: classification and layering run in
// full and the resulting graph becomes the new canonical structure. The
// display snapshot is reset to the defaults-only overlay of the new graph.
func (s *Session) Reload(ctx context.Context, steps []*pipeline.Step) {
	logger := ctxlog.FromContext(ctx)

	classified := validate.Classify(steps)
	built := layering.Build(classified.Placeable)

	warnings := Warnings{
		Orphaned:   ids(classified.Orphaned),
		Duplicate:  ids(classified.Duplicate),
		Unresolved: ids(built.Unresolved),
	}

	s.mu.Lock()
	s.graph = built.Graph
	s.warnings = warnings
	s.display = overlay.Merge(built.Graph, nil)
	s.mu.Unlock()

	logger.Debug("Session reloaded.",
		"steps", len(steps),
		"layers", len(built.Graph.Layers),
		"orphaned", len(warnings.Orphaned),
		"duplicate", len(warnings.Duplicate),
		"unresolved", len(warnings.Unresolved),
	)
}

// Apply merges a fresh status snapshot onto the current canonical graph and
// stores the result as the new display snapshot. The merge runs under the
// session lock so a concurrent Reload can never interleave with it; the
// newer of the two results simply wins.
func (s *Session) Apply(ctx context.Context, records []pipeline.StatusRecord) *overlay.Graph {
	s.mu.Lock()
	display := overlay.Merge(s.graph, records)
	s.display = display
	s.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Status overlay applied.", "records", len(records))
	return display
}

// Graph returns the current canonical layered graph.
func (s *Session) Graph() *layering.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Display returns the current display snapshot.
func (s *Session) Display() *overlay.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// Warnings returns the classification outcome of the last Reload.
func (s *Session) Warnings() Warnings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warnings
}

func ids(steps []*pipeline.Step) []string {
	if len(steps) == 0 {
		return nil
	}
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID)
	}
	return out
}
