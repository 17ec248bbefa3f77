// Package layering arranges a flat set of step definitions into an ordered
// sequence of layers: a topological batching of the dependency DAG. Steps
// within one layer share no dependency relationship with each other, and
// every dependency of a step is satisfied by an earlier layer.
//
// The builder is a pure function and always terminates. Steps that can never
// be placed, because they participate in a dependency cycle directly or
// transitively, are returned as an unresolved remainder instead of failing
// the build. Callers render that remainder as a warning state.
package layering
