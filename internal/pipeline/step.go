package pipeline

import "slices"

// Step is the canonical definition of a single pipeline stage. It is the
// vertex of the dependency graph the layering engine operates on.
type Step struct {
	// ID is the unique identifier of the step within one definition set.
	ID string `json:"id"`
	// Title is the human-readable display label.
	Title string `json:"title"`
	// DependsOn lists the ids of steps that must be placed in earlier
	// layers. Order is preserved as authored.
	DependsOn []string `json:"dependsOn,omitempty"`
}

// Clone returns a deep copy of the step. The DependsOn slice is copied so
// the result shares no memory with the receiver.
func (s *Step) Clone() Step {
	return Step{
		ID:        s.ID,
		Title:     s.Title,
		DependsOn: slices.Clone(s.DependsOn),
	}
}
