// Package corpus reads a directory of locally stored HTML pages.
//
// The corpus reader is the input boundary of the audit: it enumerates a
// directory, reads every file, and derives page identifiers from file
// names. Read failures are fatal by design; the analysis core must never
// see a partial corpus.
//
// Page titles are extracted here as report metadata, so the analysis
// stages stay free of any HTML parsing concern.
package corpus
