package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pipelayer/internal/pipeline"
)

func step(id string, deps ...string) *pipeline.Step {
	return &pipeline.Step{ID: id, Title: id, DependsOn: deps}
}

func TestSession_EmptyUntilReload(t *testing.T) {
	s := New()

	assert.Empty(t, s.Graph().Layers)
	assert.Empty(t, s.Display().Layers)
	assert.True(t, s.Warnings().Empty())
}

func TestSession_ReloadBuildsGraphAndWarnings(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Reload(ctx, []*pipeline.Step{
		step("A"),
		step("B", "A"),
		step("orphan", "missing"),
		step("X", "Y"),
		step("Y", "X"),
	})

	require.Len(t, s.Graph().Layers, 2)
	w := s.Warnings()
	assert.Equal(t, []string{"orphan"}, w.Orphaned)
	assert.Equal(t, []string{"X", "Y"}, w.Unresolved)
	assert.Empty(t, w.Duplicate)

	// The display snapshot resets to defaults on reload.
	for _, layer := range s.Display().Layers {
		for _, ds := range layer {
			assert.Equal(t, pipeline.StatusIdle, ds.Status)
		}
	}
}

func TestSession_ApplyProducesFreshSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Reload(ctx, []*pipeline.Step{step("A"), step("B", "A")})

	before := s.Display()
	display := s.Apply(ctx, []pipeline.StatusRecord{
		{StepID: "A", Status: pipeline.StatusRunning},
	})

	assert.Same(t, display, s.Display())
	assert.NotSame(t, before, display)
	assert.Equal(t, pipeline.StatusRunning, display.Layers[0][0].Status)

	// The older snapshot is untouched by the refresh.
	assert.Equal(t, pipeline.StatusIdle, before.Layers[0][0].Status)
}

func TestSession_ReloadIsFullReplace(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Reload(ctx, []*pipeline.Step{step("old", "missing")})
	require.Equal(t, []string{"old"}, s.Warnings().Orphaned)

	s.Reload(ctx, []*pipeline.Step{step("new")})

	assert.True(t, s.Warnings().Empty())
	require.Len(t, s.Graph().Layers, 1)
	assert.Equal(t, "new", s.Graph().Layers[0][0].ID)
}

func TestSession_ConcurrentApplyAndRead(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Reload(ctx, []*pipeline.Step{step("A"), step("B", "A"), step("C", "B")})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			status := pipeline.StatusRunning
			if i%2 == 0 {
				status = pipeline.StatusCompleted
			}
			s.Apply(ctx, []pipeline.StatusRecord{{StepID: fmt.Sprintf("%c", 'A'+i%3), Status: status}})
		}(i)
		go func() {
			defer wg.Done()
			d := s.Display()
			// Every observed snapshot is structurally complete.
			assert.Len(t, d.Layers, 3)
		}()
	}
	wg.Wait()
}
