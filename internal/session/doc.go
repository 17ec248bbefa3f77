// Package session holds the only state in the system: the caller-side
// current layered graph and its display snapshot. A session rebuilds the
// structural graph exactly when the definition set changes (a full replace,
// never an incremental patch) and re-runs the status overlay on every
// refresh. Every rebuild yields a brand-new value, so readers holding a
// previous snapshot are never exposed to a half-updated structure.
package session
