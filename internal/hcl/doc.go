// Package hcl loads pipeline step definitions from .hcl files. It is
// responsible for all file parsing and HCL-to-model translation; the rest of
// the repository only ever sees plain pipeline.Step values.
//
// Malformed HCL is a load error. Graph-shape problems — orphaned references,
// duplicate ids, cycles — are deliberately not: they flow through to the
// validator and builder, which report them as data.
package hcl
