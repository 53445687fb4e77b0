package model

// PageInfo describes a single corpus entry: one locally stored HTML file.
//
// Design decision: We keep the raw text on the struct rather than re-reading
// files in later steps because:
//  1. Extraction and normalization run per page, possibly concurrently
//  2. A second read could observe a modified file mid-run
//  3. Static site corpora are small relative to available memory
type PageInfo struct {
	// ID is the page identifier, derived from the file name.
	ID PageID `json:"id"`

	// Path is the absolute path of the source file.
	Path string `json:"path"`

	// Title is the page title from the <title> tag, if any.
	// Empty for files without a parseable title.
	Title string `json:"title,omitempty"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Raw is the raw file content.
	// Excluded from JSON to keep report output small.
	Raw []byte `json:"-"`
}
