package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// Default patterns for the example.com placeholder site. Real deployments
// override these via the configuration file or flags.
const (
	// DefaultFilterPattern keeps references that mention the site host.
	DefaultFilterPattern = `example\.com`

	// DefaultPrefixPattern strips scheme, host, and an optional locale
	// segment from the front of a reference.
	DefaultPrefixPattern = `^https?://(www\.)?example\.com/(en/|nl/)?`
)

// Pipeline canonicalizes raw extracted references into page identifiers.
//
// Design decision: The patterns are compiled once at construction and owned
// by the Pipeline value instead of living in package-level variables.
// This keeps the pipeline testable with arbitrary patterns and avoids
// hidden global initialization order.
type Pipeline struct {
	// filter is the site-of-interest pattern; references not matching it
	// are discarded before any other processing.
	filter *regexp.Regexp

	// prefix matches the URL prefix to remove from the front of a
	// reference, leaving a path-relative remainder.
	prefix *regexp.Regexp
}

// Config carries the two patterns a Pipeline needs.
type Config struct {
	// FilterPattern selects references belonging to the site of interest.
	FilterPattern string

	// PrefixPattern is stripped from the front of surviving references.
	PrefixPattern string
}

// New compiles the configured patterns into a Pipeline.
// Empty pattern strings fall back to the package defaults.
func New(cfg Config) (*Pipeline, error) {
	filterPattern := cfg.FilterPattern
	if filterPattern == "" {
		filterPattern = DefaultFilterPattern
	}
	prefixPattern := cfg.PrefixPattern
	if prefixPattern == "" {
		prefixPattern = DefaultPrefixPattern
	}

	filter, err := regexp.Compile(filterPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", filterPattern, err)
	}
	prefix, err := regexp.Compile(prefixPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid prefix pattern %q: %w", prefixPattern, err)
	}

	return &Pipeline{filter: filter, prefix: prefix}, nil
}

// Normalize runs every raw reference through the filter stages and returns
// the surviving page identifiers in input order. References failing a stage
// are dropped, not erred; the result may be empty but is never nil.
func (p *Pipeline) Normalize(refs []string) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id, ok := p.normalizeOne(ref); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// normalizeOne applies the four stages to a single reference:
// domain filter, prefix strip, trailing-slash trim, leftover filter.
func (p *Pipeline) normalizeOne(ref string) (string, bool) {
	// Stage 1: only references to the site of interest survive.
	if !p.filter.MatchString(ref) {
		return "", false
	}

	// Stage 2: strip the configured prefix. Only a match at the very
	// start of the string counts; the prefix never hides mid-reference.
	id := ref
	if loc := p.prefix.FindStringIndex(id); loc != nil && loc[0] == 0 {
		id = id[loc[1]:]
	}

	// Stage 3: trim exactly one trailing separator. Repeated separators
	// are deliberately not collapsed.
	id = strings.TrimSuffix(id, "/")

	// Stage 4: drop crawling leftovers. An empty remainder is a link to
	// the site root; a colon marks an unrecognized scheme (mailto: and
	// friends) that slipped past the domain filter.
	if id == "" || strings.Contains(id, ":") {
		return "", false
	}

	return id, true
}
