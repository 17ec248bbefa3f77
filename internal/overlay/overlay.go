package overlay

import (
	"time"

	"github.com/vk/pipelayer/internal/layering"
	"github.com/vk/pipelayer/internal/pipeline"
)

// Step is a display-ready step: the definition fields plus the runtime
// status merged in. It owns its memory entirely; nothing is shared with the
// canonical graph or the status records.
type Step struct {
	pipeline.Step
	Status    pipeline.Status `json:"status"`
	StartTime *time.Time      `json:"startTime,omitempty"`
	EndTime   *time.Time      `json:"endTime,omitempty"`
}

// Layer is an ordered group of display steps, mirroring one layer of the
// canonical graph.
type Layer []*Step

// Graph is the display-ready layered graph. It is owned solely by the
// caller that requested the merge.
type Graph struct {
	Layers []Layer `json:"layers"`
}

// Merge produces a fully independent display copy of graph with the given
// status records applied. Steps without a matching record default to
// StatusIdle with no timestamps. Records whose StepID matches no step are
// ignored; the status source may legitimately be ahead of or behind the
// structural graph. When several records name the same step, the last one
// in input order wins.
func Merge(graph *layering.Graph, records []pipeline.StatusRecord) *Graph {
	out := &Graph{}
	if graph == nil {
		return out
	}

	latest := make(map[string]pipeline.StatusRecord, len(records))
	for _, rec := range records {
		latest[rec.StepID] = rec
	}

	out.Layers = make([]Layer, 0, len(graph.Layers))
	for _, layer := range graph.Layers {
		display := make(Layer, 0, len(layer))
		for _, s := range layer {
			ds := &Step{
				Step:   s.Clone(),
				Status: pipeline.StatusIdle,
			}
			if rec, ok := latest[s.ID]; ok {
				ds.Status = rec.Status
				ds.StartTime = cloneTime(rec.StartTime)
				ds.EndTime = cloneTime(rec.EndTime)
			}
			display = append(display, ds)
		}
		out.Layers = append(out.Layers, display)
	}
	return out
}

// cloneTime copies a timestamp so the display graph does not alias the
// ephemeral record it came from.
func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
