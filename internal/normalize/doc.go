// Package normalize canonicalizes raw link references into page identifiers.
//
// The pipeline applies four stages in order: a domain filter that keeps
// only references to the site of interest, a prefix strip that removes the
// scheme/host/locale front, a trailing-slash trim, and a leftover filter
// that discards empty remainders and unrecognized scheme artifacts.
//
// All stages drop silently. A reference that fails a stage simply produces
// no identifier; nothing in this package returns an error at normalization
// time. Pattern compilation errors surface once, at pipeline construction.
package normalize
