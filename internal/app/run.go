package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/pipelayer/internal/ctxlog"
	"github.com/vk/pipelayer/internal/hcl"
	"github.com/vk/pipelayer/internal/overlay"
	"github.com/vk/pipelayer/internal/pipeline"
	"github.com/vk/pipelayer/internal/session"
)

// result is the JSON document written to the output writer: the display
// layers plus the flat warning sets for the caller to render.
type result struct {
	Layers     []overlay.Layer `json:"layers"`
	Orphaned   []string        `json:"orphaned,omitempty"`
	Duplicate  []string        `json:"duplicate,omitempty"`
	Unresolved []string        `json:"unresolved,omitempty"`
}

// Run executes the main application logic: load definitions, rebuild the
// structural graph, overlay the optional status snapshot, and emit the
// display graph as JSON.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	steps, err := hcl.LoadPipeline(ctx, a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline definitions: %w", err)
	}

	a.session.Reload(ctx, steps)
	a.logWarnings(a.session.Warnings())

	var records []pipeline.StatusRecord
	if a.config.StatusPath != "" {
		records, err = a.loadStatuses(ctx)
		if err != nil {
			return err
		}
	}
	display := a.session.Apply(ctx, records)

	warnings := a.session.Warnings()
	out := result{
		Layers:     display.Layers,
		Orphaned:   warnings.Orphaned,
		Duplicate:  warnings.Duplicate,
		Unresolved: warnings.Unresolved,
	}
	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode display graph: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// loadStatuses reads the status snapshot file configured via StatusPath.
func (a *App) loadStatuses(ctx context.Context) ([]pipeline.StatusRecord, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading status snapshot.", "path", a.config.StatusPath)

	f, err := os.Open(a.config.StatusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open status snapshot: %w", err)
	}
	defer f.Close()

	records, err := pipeline.DecodeStatusRecords(f)
	if err != nil {
		return nil, err
	}
	logger.Debug("Status snapshot loaded.", "records", len(records))
	return records, nil
}

// logWarnings surfaces the non-fatal classification outcome. The graph is
// still rendered; these only tell the user what was left out of it.
func (a *App) logWarnings(w session.Warnings) {
	if w.Empty() {
		return
	}
	if len(w.Duplicate) > 0 {
		a.logger.Warn("Duplicate step ids found, later definitions ignored.", "ids", w.Duplicate)
	}
	if len(w.Orphaned) > 0 {
		a.logger.Warn("Steps with dangling dependency references left out of the graph.", "ids", w.Orphaned)
	}
	if len(w.Unresolved) > 0 {
		a.logger.Warn("Steps could not be placed in any layer (dependency cycle).", "ids", w.Unresolved)
	}
}
