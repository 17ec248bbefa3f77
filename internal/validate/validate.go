package validate

import (
	"github.com/vk/pipelayer/internal/pipeline"
)

// Result partitions a definition set into steps the layering engine can
// place and steps it must not see. Every input step lands in exactly one of
// the three slices, each preserving original input order.
type Result struct {
	// Placeable holds the steps that passed classification.
	Placeable []*pipeline.Step
	// Orphaned holds steps whose DependsOn references an id that matches no
	// step in the input set.
	Orphaned []*pipeline.Step
	// Duplicate holds later re-uses of an id already claimed by an earlier
	// step. The first occurrence stays placeable.
	Duplicate []*pipeline.Step
}

// Classify partitions steps into placeable, orphaned, and duplicate sets.
// It is a pure function of its input: the steps themselves are never
// modified and no ordering is changed.
//
// The orphan check runs against the id set of the whole input, not the
// placeable remainder. A step depending on an orphaned step is therefore
// not itself orphaned; if its dependency can never be placed, the layering
// engine reports it as unresolved instead.
func Classify(steps []*pipeline.Step) Result {
	known := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		known[s.ID] = struct{}{}
	}

	var res Result
	seen := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		if _, dup := seen[s.ID]; dup {
			res.Duplicate = append(res.Duplicate, s)
			continue
		}
		seen[s.ID] = struct{}{}

		if dangling(s, known) {
			res.Orphaned = append(res.Orphaned, s)
			continue
		}
		res.Placeable = append(res.Placeable, s)
	}
	return res
}

// dangling reports whether any dependency of s references an id outside the
// definition set.
func dangling(s *pipeline.Step, known map[string]struct{}) bool {
	for _, dep := range s.DependsOn {
		if _, ok := known[dep]; !ok {
			return true
		}
	}
	return false
}
