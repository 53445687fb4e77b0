package extract

import "regexp"

// anchorPattern recognizes anchor tags with a quoted href value. It is
// deliberately a pattern over raw text rather than a DOM query because the
// corpus is not guaranteed to be well-formed markup; a tolerant scan yields
// fewer matches on broken input instead of failing.
//
// The rules encoded here:
//   - extra attributes may appear before and after href
//   - whitespace around = is allowed
//   - single and double quotes are both accepted, but must match
//   - the first character of the target must not be '#' (fragment-only),
//     '/' or '\' (absolute or escaped paths)
//   - anchors without a quoted value never match and are skipped silently
var anchorPattern = regexp.MustCompile(
	`(?is)<a\s[^>]*?href\s*=\s*(?:'([^#/\\'][^']*?)'|"([^#/\\"][^"]*?)")[^>]*?>`,
)

// Links returns the raw href targets of all matching anchors in text, in
// document order. Malformed input yields fewer matches, never an error.
func Links(text string) []string {
	matches := anchorPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]string, 0, len(matches))
	for _, m := range matches {
		// Group 1 is the single-quoted variant, group 2 the double-quoted
		// one. Exactly one of them is non-empty for any match.
		if m[1] != "" {
			links = append(links, m[1])
		} else {
			links = append(links, m[2])
		}
	}
	return links
}
