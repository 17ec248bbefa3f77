// Package overlay merges ephemeral status records onto a layered graph,
// producing a display-ready copy. The merge is an explicit copy-constructor:
// the canonical graph passed in is never mutated or aliased, so the caller
// can re-run the merge on every status refresh while readers keep older
// snapshots safely.
package overlay
