package model

// PageID is the canonical string naming a page. It is derived from a file
// name in the corpus or from a normalized link target, and is compared by
// exact string equality. No case folding or percent decoding is applied.
type PageID = string

// LinkageMap maps each page to the normalized targets discovered on it.
//
// The order of each page's outgoing links is the extraction order and may
// contain duplicates; deduplication happens at graph construction. The
// iteration order of the outer map carries no meaning.
type LinkageMap map[PageID][]PageID

// Add records the outgoing links for a page, replacing any previous entry.
func (m LinkageMap) Add(page PageID, targets []PageID) {
	m[page] = targets
}

// Pages returns the number of pages that were processed as link sources.
func (m LinkageMap) Pages() int {
	return len(m)
}

// Targets returns the total number of recorded references, duplicates
// included.
func (m LinkageMap) Targets() int {
	n := 0
	for _, targets := range m {
		n += len(targets)
	}
	return n
}
