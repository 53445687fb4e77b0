package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barafael/page-graph/internal/config"
	"github.com/barafael/page-graph/internal/database"
	"github.com/barafael/page-graph/internal/model"
)

// Orphan trend labels.
const (
	trendImproved  = "IMPROVED (orphans resolved)"
	trendWorsened  = "WORSENED (new orphans)"
	trendUnchanged = "UNCHANGED"
)

// NewCompareCmd creates the compare command.
// This command compares audit runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [site]",
		Short: "Compare audit runs from the history database",
		Long: `Compare shows how the orphan set of a site changed between audit runs.

This command retrieves stored run summaries from the database and shows:
- New orphans that appeared since the previous run
- Resolved orphans that are no longer unreachable
- Changes in page, node, and edge counts

The comparison requires at least two stored runs for the specified site.
Use 'page-graph audit' to run audits and record summaries.

Examples:
  # Compare the latest two runs for a site
  page-graph compare example.com

  # List all stored runs for a site
  page-graph compare --list example.com

  # Compare the latest run with a specific run by ID
  page-graph compare --with-run-id 5 example.com

  # Output comparison in JSON format
  page-graph compare --json example.com

  # List all sites in the database
  page-graph compare --list-sites`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List run history for the specified site")
	cmd.Flags().BoolP("list-sites", "L", false,
		"List all sites in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listSites, err := cmd.Flags().GetBool("list-sites")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database
	var site string
	if !listSites {
		if len(args) == 0 {
			return errors.New("site is required (use --list-sites to see available sites)")
		}
		site = args[0]
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// The database must already exist; compare never creates one
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open database (run 'page-graph audit' first): %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if listSites {
		return listStoredSites(ctx, db, out)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, db, site, out)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, site, withRunID, jsonOutput, out)
}

// listStoredSites lists all sites that have run records in the database.
func listStoredSites(ctx context.Context, db *database.HistoryDB, out io.Writer) error {
	sites, err := db.ListSites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	if len(sites) == 0 {
		fmt.Fprintln(out, "No audited sites found in the database.")
		fmt.Fprintln(out, "\nUse 'page-graph audit <directory>' to audit a site.")
		return nil
	}

	fmt.Fprintf(out, "Audited sites (%d):\n\n", len(sites))
	for _, site := range sites {
		fmt.Fprintf(out, "  • %s\n", site)
	}
	fmt.Fprintln(out, "\nUse 'page-graph compare --list <site>' to see run history for a site.")

	return nil
}

// listRunHistory lists all run records for a specific site.
func listRunHistory(ctx context.Context, db *database.HistoryDB, site string, out io.Writer) error {
	runs, err := db.ListRuns(ctx, site)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No run history found for %s\n", site)
		fmt.Fprintln(out, "\nUse 'page-graph audit' to audit this site.")
		return nil
	}

	fmt.Fprintf(out, "Run history for %s (%d runs):\n\n", site, len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-7s  %-7s  %-7s  %s\n", "ID", "Date", "Pages", "Nodes", "Edges", "Orphans")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 66))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-7d  %-7d  %-7d  %d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.PageCount,
			run.NodeCount,
			run.EdgeCount,
			len(run.Orphans),
		)
	}

	fmt.Fprintln(out, "\nUse 'page-graph compare <site>' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'page-graph compare --with-run-id <id> <site>' to compare with a specific run.")

	return nil
}

// runComparison performs the comparison between stored runs.
func runComparison(ctx context.Context, db *database.HistoryDB, site string, withRunID int64, jsonOutput bool, out io.Writer) error {
	latest, err := db.LatestRuns(ctx, site, 2)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}
	if len(latest) == 0 {
		return fmt.Errorf("no run history found for %s", site)
	}

	current := latest[0]

	var previous *model.RunRecord
	if withRunID > 0 {
		previous, err = db.GetRun(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", withRunID, err)
		}
		if previous == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		if previous.Site != site {
			return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, previous.Site, site)
		}
	} else {
		if len(latest) < 2 {
			return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(latest))
		}
		previous = latest[1]
	}

	diff := model.DiffRuns(previous, current)

	if jsonOutput {
		return outputDiffJSON(diff, out)
	}
	return outputDiffText(diff, out)
}

// outputDiffJSON outputs the comparison result in JSON format.
func outputDiffJSON(diff *model.RunDiff, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(diff)
}

// outputDiffText outputs the comparison result in human-readable text format.
func outputDiffText(diff *model.RunDiff, out io.Writer) error {
	fmt.Fprintf(out, "Run Comparison: %s\n", diff.After.Site)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nOrphan Trend: %s\n", formatTrend(diff))

	fmt.Fprintf(out, "\nPrevious run: #%d  %s\n", diff.Before.ID, diff.Before.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Current run:  #%d  %s\n", diff.After.ID, diff.After.Timestamp.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(out, "\nGraph Summary:")
	fmt.Fprintf(out, "  %-10s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 45))
	fmt.Fprintf(out, "  %-10s  %-10d  %-10d  %-10s\n", "Pages",
		diff.Before.PageCount, diff.After.PageCount,
		formatDelta(diff.After.PageCount-diff.Before.PageCount))
	fmt.Fprintf(out, "  %-10s  %-10d  %-10d  %-10s\n", "Nodes",
		diff.Before.NodeCount, diff.After.NodeCount,
		formatDelta(diff.After.NodeCount-diff.Before.NodeCount))
	fmt.Fprintf(out, "  %-10s  %-10d  %-10d  %-10s\n", "Edges",
		diff.Before.EdgeCount, diff.After.EdgeCount,
		formatDelta(diff.After.EdgeCount-diff.Before.EdgeCount))
	fmt.Fprintf(out, "  %-10s  %-10d  %-10d  %-10s\n", "Orphans",
		len(diff.Before.Orphans), len(diff.After.Orphans),
		formatDelta(len(diff.After.Orphans)-len(diff.Before.Orphans)))

	if len(diff.NewOrphans) > 0 {
		fmt.Fprintf(out, "\nNew Orphans (%d):\n", len(diff.NewOrphans))
		for _, id := range diff.NewOrphans {
			fmt.Fprintf(out, "  [+] %s\n", id)
		}
	}

	if len(diff.ResolvedOrphans) > 0 {
		fmt.Fprintf(out, "\nResolved Orphans (%d):\n", len(diff.ResolvedOrphans))
		for _, id := range diff.ResolvedOrphans {
			fmt.Fprintf(out, "  [-] %s\n", id)
		}
	}

	if len(diff.UnchangedOrphans) > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d orphan(s)\n", len(diff.UnchangedOrphans))
	}

	return nil
}

// formatTrend formats the orphan trend for display.
func formatTrend(diff *model.RunDiff) string {
	switch {
	case diff.Worsened():
		return trendWorsened
	case diff.Improved():
		return trendImproved
	default:
		return trendUnchanged
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
