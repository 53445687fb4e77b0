package model

import (
	"slices"
	"time"
)

// RunRecord is a stored summary of one audit run.
// Only the report summary is persisted, never the graph itself.
type RunRecord struct {
	// ID is the database row identifier.
	ID int64 `json:"id"`

	// Site is the audited site name.
	Site string `json:"site"`

	// Directory is the corpus directory that was audited.
	Directory string `json:"directory"`

	// Timestamp is when the audit ran.
	Timestamp time.Time `json:"timestamp"`

	// PageCount is the number of corpus files read.
	PageCount int `json:"page_count"`

	// NodeCount and EdgeCount describe the graph size.
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`

	// Orphans is the sorted orphan list of that run.
	Orphans []PageID `json:"orphans"`
}

// RunDiff describes how the orphan set changed between two runs.
type RunDiff struct {
	// Before and After identify the compared runs.
	Before *RunRecord `json:"before"`
	After  *RunRecord `json:"after"`

	// NewOrphans are pages orphaned in After but not in Before.
	NewOrphans []PageID `json:"new_orphans"`

	// ResolvedOrphans are pages orphaned in Before but no longer in After.
	ResolvedOrphans []PageID `json:"resolved_orphans"`

	// UnchangedOrphans are orphaned in both runs.
	UnchangedOrphans []PageID `json:"unchanged_orphans"`
}

// DiffRuns compares the orphan sets of two runs.
// All result slices are sorted lexically.
func DiffRuns(before, after *RunRecord) *RunDiff {
	diff := &RunDiff{
		Before:           before,
		After:            after,
		NewOrphans:       make([]PageID, 0),
		ResolvedOrphans:  make([]PageID, 0),
		UnchangedOrphans: make([]PageID, 0),
	}

	old := make(map[PageID]bool, len(before.Orphans))
	for _, id := range before.Orphans {
		old[id] = true
	}
	current := make(map[PageID]bool, len(after.Orphans))
	for _, id := range after.Orphans {
		current[id] = true
	}

	for _, id := range after.Orphans {
		if old[id] {
			diff.UnchangedOrphans = append(diff.UnchangedOrphans, id)
		} else {
			diff.NewOrphans = append(diff.NewOrphans, id)
		}
	}
	for _, id := range before.Orphans {
		if !current[id] {
			diff.ResolvedOrphans = append(diff.ResolvedOrphans, id)
		}
	}

	slices.Sort(diff.NewOrphans)
	slices.Sort(diff.ResolvedOrphans)
	slices.Sort(diff.UnchangedOrphans)

	return diff
}

// Improved reports whether the orphan situation got strictly better.
func (d *RunDiff) Improved() bool {
	return len(d.NewOrphans) == 0 && len(d.ResolvedOrphans) > 0
}

// Worsened reports whether new orphans appeared.
func (d *RunDiff) Worsened() bool {
	return len(d.NewOrphans) > 0
}
