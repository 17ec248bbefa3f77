// Package pipeline provides the Go struct representation of a pipeline
// definition set and the runtime status records that annotate it.
//
// The model is built around two structures with very different lifetimes:
//
//   - Step: the canonical definition of a single pipeline stage, identified
//     by a unique id and connected to other stages through DependsOn
//     references. A definition set is created once per pipeline selection
//     and is immutable for the lifetime of a build.
//
//   - StatusRecord: ephemeral execution state (status, timestamps) for one
//     step. Records are refreshed on every push or polling cycle and have no
//     existence independent of the step they annotate.
//
// Keeping the two apart is deliberate: the layering engine operates on Steps
// only, and status is merged onto a layered structure late, as a display
// concern. This package owns the wire shapes at both boundaries so that the
// rest of the repository deals in plain Go values.
package pipeline
