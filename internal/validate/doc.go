// Package validate classifies a step definition set before graph
// construction. Nothing here is fatal: duplicate ids and dangling
// dependency references are reported as data alongside the placeable
// remainder, so callers can always render a best-effort structure and
// decide for themselves how prominently to surface the problems.
package validate
