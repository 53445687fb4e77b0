package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/barafael/page-graph/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the audit report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeOrphans(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       PAGE GRAPH AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Site:        %s\n", report.Site))
	sb.WriteString(fmt.Sprintf("Corpus:      %s\n", report.Directory))
	sb.WriteString(fmt.Sprintf("Audit Date:  %s\n", report.DateAudited.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Root Page:   %s\n", report.RootID))

	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:      ERROR - %s\n", report.ErrorMessage))
	} else if !report.RootPresent {
		sb.WriteString("Status:      Complete (root page absent from graph)\n")
	} else {
		sb.WriteString("Status:      Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the graph summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("GRAPH SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  PAGES:   %d\n", report.PageCount()))
	sb.WriteString(fmt.Sprintf("  NODES:   %d\n", report.NodeCount))
	sb.WriteString(fmt.Sprintf("  EDGES:   %d\n", report.EdgeCount))
	sb.WriteString(fmt.Sprintf("  ORPHANS: %d\n", report.OrphanCount()))
	sb.WriteString("\n")

	if w.verbose && len(report.PerformedSteps) > 0 {
		sb.WriteString(fmt.Sprintf("  Steps:   %s\n", strings.Join(report.PerformedSteps, ", ")))
		sb.WriteString("\n")
	}
}

// writeOrphans writes the orphan listing with titles and dangling markers.
func (w *SimpleWriter) writeOrphans(sb *strings.Builder, report *model.AuditReport) {
	if report.OrphanCount() == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ORPHANED PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.OrphanCount() == 0 {
		sb.WriteString("  No orphaned pages: every page is reachable from the root.\n")
		sb.WriteString("\n")
		return
	}

	if !report.RootPresent {
		sb.WriteString(fmt.Sprintf("  Root page %q is not in the graph; every page is listed.\n\n", report.RootID))
	}

	for _, id := range report.Orphans {
		line := fmt.Sprintf("  * %s", id)
		if title := report.TitleOf(id); title != "" {
			line += fmt.Sprintf(" (%s)", title)
		}
		if report.IsDangling(id) {
			line += " [dangling: linked but no file]"
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by page-graph\n")
	sb.WriteString("https://github.com/barafael/page-graph\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
