package layering

import (
	"github.com/vk/pipelayer/internal/pipeline"
)

// Layer is an ordered group of steps that can be rendered or executed
// together. Order within a layer follows the original input order.
type Layer []*pipeline.Step

// Graph is an ordered sequence of layers. For every step in layer N, every
// id it depends on appears in some layer < N.
type Graph struct {
	Layers []Layer `json:"layers"`
}

// Len returns the total number of steps across all layers.
func (g *Graph) Len() int {
	n := 0
	for _, layer := range g.Layers {
		n += len(layer)
	}
	return n
}

// LayerIndexOf returns the layer index of the step with the given id, or -1
// if the id appears in no layer.
func (g *Graph) LayerIndexOf(id string) int {
	for i, layer := range g.Layers {
		for _, s := range layer {
			if s.ID == id {
				return i
			}
		}
	}
	return -1
}

// Result is the outcome of a build: the layered graph plus the steps that
// could not be placed in any layer.
type Result struct {
	Graph *Graph
	// Unresolved holds the steps left over once no further progress was
	// possible, i.e. the members of one or more dependency cycles and any
	// step stranded behind them. Input order is preserved.
	Unresolved []*pipeline.Step
}

// Build arranges steps into layers by repeated rounds of placement. Each
// round selects every not-yet-placed step whose entire DependsOn set has
// been placed in earlier rounds; a step with no dependencies qualifies
// immediately. The selection of a round becomes the next layer. A round
// that places nothing while steps remain ends the build and moves the
// remainder to Unresolved.
//
// The loop either places at least one step per round or stops, so Build
// always terminates. Given the same input slice, including element order,
// the output is identical across runs: layers inherit the relative input
// order and no map iteration influences the result.
//
// Build never mutates its input. The returned graph aliases the given step
// pointers; the definitions themselves are treated as immutable.
func Build(steps []*pipeline.Step) Result {
	graph := &Graph{}
	placed := make(map[string]struct{}, len(steps))

	remaining := make([]*pipeline.Step, len(steps))
	copy(remaining, steps)

	for len(remaining) > 0 {
		var layer Layer
		var deferred []*pipeline.Step

		// Readiness is judged against the layers of previous rounds only;
		// placed is updated after the scan so steps in the same round never
		// satisfy each other.
		for _, s := range remaining {
			if ready(s, placed) {
				layer = append(layer, s)
			} else {
				deferred = append(deferred, s)
			}
		}

		if len(layer) == 0 {
			return Result{Graph: graph, Unresolved: deferred}
		}

		for _, s := range layer {
			placed[s.ID] = struct{}{}
		}
		graph.Layers = append(graph.Layers, layer)
		remaining = deferred
	}

	return Result{Graph: graph}
}

// ready reports whether every dependency of s has already been placed.
func ready(s *pipeline.Step, placed map[string]struct{}) bool {
	for _, dep := range s.DependsOn {
		if _, ok := placed[dep]; !ok {
			return false
		}
	}
	return true
}
