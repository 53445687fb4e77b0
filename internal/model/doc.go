// Package model defines the core data structures used throughout page-graph.
//
// This package contains the following main types:
//   - LinkageMap: page identifier to normalized outgoing references
//   - PageInfo: one corpus entry with its raw content and title
//   - AuditReport: the accumulated result of a single audit run
//   - RunRecord/RunDiff: persisted run summaries and their comparison
//
// Design decision: We separate models into their own package to avoid
// circular dependencies. Multiple packages (corpus, pipeline, report,
// database) need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
