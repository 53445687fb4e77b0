package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/barafael/page-graph/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the audit report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeOrphans(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Page Graph Audit Report")
	md.PlainText("")

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.Site + "`"},
			{"Corpus", "`" + report.Directory + "`"},
			{"Audit Date", report.DateAudited.Format("2006-01-02 15:04:05 MST")},
			{"Root Page", "`" + report.RootID + "`"},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.AuditReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if !report.RootPresent {
		return "⚠️ Complete (root page absent from graph)"
	}
	return "✅ Complete"
}

// writeSummary writes the graph summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Graph Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Pages read", strconv.Itoa(report.PageCount())},
			{"Graph nodes", strconv.Itoa(report.NodeCount)},
			{"Graph edges", strconv.Itoa(report.EdgeCount)},
			{"Orphaned pages", strconv.Itoa(report.OrphanCount())},
		},
	})
	md.PlainText("")

	// Add pie chart when the graph splits into reachable and orphaned parts
	if report.OrphanCount() > 0 && report.NodeCount > report.OrphanCount() {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of reachable versus orphaned pages.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AuditReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Page Reachability"),
		piechart.WithShowData(true),
	)

	reachable := report.NodeCount - report.OrphanCount()
	chart.LabelAndIntValue("Reachable", uint64(reachable))
	chart.LabelAndIntValue("Orphaned", uint64(report.OrphanCount()))

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the orphan count.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	switch {
	case !report.RootPresent:
		md.Warningf(
			"Root page `%s` does not exist in the graph. Every page is listed as orphaned.",
			report.RootID,
		)
	case report.OrphanCount() > 0:
		md.Importantf(
			"%d page(s) are unreachable from the root. Link them or remove them.",
			report.OrphanCount(),
		)
	default:
		md.Tip("Every page is reachable from the root.")
	}
	md.PlainText("")
}

// writeOrphans writes the orphan listing with titles and dangling markers.
func (w *MarkdownWriter) writeOrphans(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Orphaned Pages")
	md.PlainText("")

	if report.OrphanCount() == 0 {
		md.PlainText("No orphaned pages detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, report.OrphanCount())
	for i, id := range report.Orphans {
		title := report.TitleOf(id)
		if title == "" {
			title = "-"
		}
		kind := "orphaned file"
		if report.IsDangling(id) {
			kind = "dangling link target"
		}

		rows[i] = []string{
			"`" + id + "`",
			truncateString(title, 50),
			kind,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Page", "Title", "Kind"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [page-graph](https://github.com/barafael/page-graph)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
