// Package extract scans raw page text for anchor references.
//
// The extractor is the first stage of the audit pipeline. It operates on
// plain text, tolerates malformed markup, and produces raw reference
// strings in document order. Filtering and canonicalization are the
// normalize package's job; this package only finds candidates.
//
// Fragment-only links (#...), absolute paths (/...), and escaped paths
// (\...) are excluded at this stage because they can never name another
// corpus page directly.
package extract
