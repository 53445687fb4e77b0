package model

import (
	"time"
)

// AuditReport is the accumulated result of a single site audit.
// Pipeline steps fill it in as they run: the corpus step records the pages,
// the extraction step the linkage, the graph step the node and edge counts,
// and the orphan step the final orphan list.
//
// Design decision: Steps communicate through this shared report rather than
// through return values because:
//  1. A later step often needs output from several earlier ones
//  2. Partial results survive a failed step when the pipeline continues
//  3. The report doubles as the serialization model for all writers
type AuditReport struct {
	// Site is the configured site name (database key and display name).
	Site string `json:"site"`

	// Directory is the corpus directory that was audited.
	Directory string `json:"directory"`

	// RootID is the entry page identifier used for reachability.
	RootID PageID `json:"root_id"`

	// DateAudited is the time the audit started.
	DateAudited time.Time `json:"date_audited"`

	// Pages are the corpus entries, in directory enumeration order.
	Pages []*PageInfo `json:"pages,omitempty"`

	// Linkage maps each page to its normalized outgoing references.
	Linkage LinkageMap `json:"linkage,omitempty"`

	// NodeCount is the number of distinct pages in the graph, dangling
	// link targets included.
	NodeCount int `json:"node_count"`

	// EdgeCount is the number of distinct directed links.
	EdgeCount int `json:"edge_count"`

	// RootPresent reports whether the root identifier exists in the graph.
	// When false every node is an orphan candidate; this is a valid
	// outcome, not an error.
	RootPresent bool `json:"root_present"`

	// Orphans are the pages unreachable from the root, sorted lexically.
	Orphans []PageID `json:"orphans"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error holds the first step error, if any.
	// Excluded from JSON; ErrorMessage carries the serializable form.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for report output.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAuditReport creates an empty report for the given site and corpus
// directory.
func NewAuditReport(site, directory string) *AuditReport {
	return &AuditReport{
		Site:        site,
		Directory:   directory,
		DateAudited: time.Now(),
		Linkage:     make(LinkageMap),
	}
}

// OrphanCount returns the number of orphan candidates.
func (r *AuditReport) OrphanCount() int {
	return len(r.Orphans)
}

// PageCount returns the number of corpus entries that were read.
func (r *AuditReport) PageCount() int {
	return len(r.Pages)
}

// TitleOf returns the title of the given page, or the empty string when the
// page was never read from the corpus (a dangling link target).
func (r *AuditReport) TitleOf(id PageID) string {
	for _, p := range r.Pages {
		if p.ID == id {
			return p.Title
		}
	}
	return ""
}

// IsDangling reports whether the identifier was only ever seen as a link
// target, with no corresponding file in the corpus.
func (r *AuditReport) IsDangling(id PageID) bool {
	for _, p := range r.Pages {
		if p.ID == id {
			return false
		}
	}
	return true
}
