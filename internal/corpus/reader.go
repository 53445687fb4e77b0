package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/barafael/page-graph/internal/model"
)

// ErrNotDirectory is returned when the corpus path exists but is not a
// directory.
var ErrNotDirectory = errors.New("corpus path is not a directory")

// Reader enumerates a directory of locally stored HTML pages.
//
// Design decision: Reading is strictly sequential and all-or-nothing. A
// failed read aborts the run instead of feeding the analysis a partial
// corpus; a linkage map built from half the site would report false
// orphans.
type Reader struct {
	// dir is the corpus directory.
	dir string
}

// NewReader creates a Reader for the given directory.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// ReadAll reads every regular file in the corpus directory (non-recursive,
// matching how static site exports lay out one file per page) and returns
// one PageInfo per file, sorted by identifier. Subdirectories are skipped.
//
// The page identifier is the file name, used as-is: identifiers are exact
// strings, no case folding or extension stripping.
func (r *Reader) ReadAll() ([]*model.PageInfo, error) {
	info, err := os.Stat(r.dir)
	if err != nil {
		return nil, fmt.Errorf("stat corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	pages := make([]*model.PageInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(r.dir, entry.Name())
		raw, err := os.ReadFile(path) //nolint:gosec // Corpus paths are user-provided by design
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", path, err)
		}

		pages = append(pages, &model.PageInfo{
			ID:    entry.Name(),
			Path:  path,
			Title: Title(raw),
			Size:  int64(len(raw)),
			Raw:   raw,
		})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages, nil
}
