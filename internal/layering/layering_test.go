package layering

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pipelayer/internal/pipeline"
)

func step(id string, deps ...string) *pipeline.Step {
	return &pipeline.Step{ID: id, Title: id, DependsOn: deps}
}

func layerIDs(g *Graph) [][]string {
	out := make([][]string, 0, len(g.Layers))
	for _, layer := range g.Layers {
		ids := make([]string, 0, len(layer))
		for _, s := range layer {
			ids = append(ids, s.ID)
		}
		out = append(out, ids)
	}
	return out
}

func unresolvedIDs(res Result) []string {
	ids := make([]string, 0, len(res.Unresolved))
	for _, s := range res.Unresolved {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestBuild_FanInFanOut(t *testing.T) {
	t.Parallel()

	// A diamond: B and C fan out from A, D fans back in.
	steps := []*pipeline.Step{
		step("A"),
		step("B", "A"),
		step("C", "A"),
		step("D", "B", "C"),
	}

	res := Build(steps)

	require.Empty(t, res.Unresolved)
	assert.Equal(t, [][]string{{"A"}, {"B", "C"}, {"D"}}, layerIDs(res.Graph))
}

func TestBuild_Chain(t *testing.T) {
	t.Parallel()

	steps := []*pipeline.Step{
		step("load", "transform"),
		step("extract"),
		step("transform", "extract"),
	}

	res := Build(steps)

	require.Empty(t, res.Unresolved)
	assert.Equal(t, [][]string{{"extract"}, {"transform"}, {"load"}}, layerIDs(res.Graph))
}

func TestBuild_DirectCycle(t *testing.T) {
	t.Parallel()

	steps := []*pipeline.Step{
		step("A", "B"),
		step("B", "A"),
	}

	res := Build(steps)

	assert.Empty(t, res.Graph.Layers)
	assert.Equal(t, []string{"A", "B"}, unresolvedIDs(res))
}

func TestBuild_CycleBesideValidComponent(t *testing.T) {
	t.Parallel()

	// The acyclic component layers normally; the cycle and everything
	// stranded behind it end up unresolved.
	steps := []*pipeline.Step{
		step("A"),
		step("X", "Y"),
		step("B", "A"),
		step("Y", "X"),
		step("Z", "Y"),
	}

	res := Build(steps)

	assert.Equal(t, [][]string{{"A"}, {"B"}}, layerIDs(res.Graph))
	assert.Equal(t, []string{"X", "Y", "Z"}, unresolvedIDs(res))
}

func TestBuild_SelfDependency(t *testing.T) {
	t.Parallel()

	res := Build([]*pipeline.Step{step("A", "A")})

	assert.Empty(t, res.Graph.Layers)
	assert.Equal(t, []string{"A"}, unresolvedIDs(res))
}

func TestBuild_LayerIndexInvariant(t *testing.T) {
	t.Parallel()

	// Mixed fan-out depth: H depends on branches of unequal length and must
	// land one layer after the deeper branch.
	steps := []*pipeline.Step{
		step("root"),
		step("short", "root"),
		step("deep1", "root"),
		step("deep2", "deep1"),
		step("H", "short", "deep2"),
	}

	res := Build(steps)
	require.Empty(t, res.Unresolved)
	g := res.Graph

	for _, s := range steps {
		idx := g.LayerIndexOf(s.ID)
		require.GreaterOrEqual(t, idx, 0, "step %s not placed", s.ID)

		if len(s.DependsOn) == 0 {
			assert.Equal(t, 0, idx, "root step %s must land in layer 0", s.ID)
			continue
		}
		maxDep := -1
		for _, dep := range s.DependsOn {
			if d := g.LayerIndexOf(dep); d > maxDep {
				maxDep = d
			}
		}
		assert.Equal(t, maxDep+1, idx, "step %s must land one layer after its deepest dependency", s.ID)
	}
}

func TestBuild_PreservesInputOrderWithinLayer(t *testing.T) {
	t.Parallel()

	steps := []*pipeline.Step{
		step("c"),
		step("a"),
		step("b"),
	}

	res := Build(steps)

	assert.Equal(t, [][]string{{"c", "a", "b"}}, layerIDs(res.Graph))
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	var steps []*pipeline.Step
	steps = append(steps, step("seed"))
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("s%d", i)
		if i == 0 {
			steps = append(steps, step(id, "seed"))
		} else {
			steps = append(steps, step(id, fmt.Sprintf("s%d", i-1), "seed"))
		}
	}

	first := Build(steps)
	second := Build(steps)

	assert.Equal(t, layerIDs(first.Graph), layerIDs(second.Graph))
	assert.Equal(t, unresolvedIDs(first), unresolvedIDs(second))
}

func TestBuild_EveryPlaceableStepAppearsExactlyOnce(t *testing.T) {
	t.Parallel()

	steps := []*pipeline.Step{
		step("A"),
		step("B", "A"),
		step("C", "A"),
		step("D", "B", "C"),
		step("E"),
	}

	res := Build(steps)
	require.Empty(t, res.Unresolved)

	seen := make(map[string]int)
	for _, layer := range res.Graph.Layers {
		for _, s := range layer {
			seen[s.ID]++
		}
	}
	require.Len(t, seen, len(steps))
	for id, count := range seen {
		assert.Equal(t, 1, count, "step %s placed %d times", id, count)
	}
	assert.Equal(t, len(steps), res.Graph.Len())
}

func TestBuild_EmptyInput(t *testing.T) {
	t.Parallel()

	res := Build(nil)

	assert.Empty(t, res.Graph.Layers)
	assert.Empty(t, res.Unresolved)
	assert.Equal(t, -1, res.Graph.LayerIndexOf("anything"))
}
