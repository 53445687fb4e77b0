package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/barafael/page-graph/internal/config"
	"github.com/barafael/page-graph/internal/database"
	"github.com/barafael/page-graph/internal/log"
	"github.com/barafael/page-graph/internal/model"
	"github.com/barafael/page-graph/internal/normalize"
	"github.com/barafael/page-graph/internal/pipeline"
	"github.com/barafael/page-graph/internal/render"
	"github.com/barafael/page-graph/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <directory>",
		Short: "Audit the link structure of a page directory",
		Long: `Audit reads every file in the given directory as a page, extracts the
links on each page, and builds a directed graph of the site structure.

Pages that cannot be reached from the root page (default: "index") are
reported as orphans. The graph can additionally be written in Graphviz
DOT form or rendered to SVG.

Examples:
  # Audit a directory of downloaded pages
  page-graph audit ./pages

  # Use site settings from the config file
  page-graph audit --site example.com ./pages

  # Custom normalization patterns and root page
  page-graph audit --filter 'example\.com' --prefix '^https?://example\.com/' --root home ./pages

  # Emit the graph as DOT and SVG
  page-graph audit --dot site.dot --svg site.svg ./pages

  # Machine-readable report
  page-graph audit --json ./pages

Configuration file (.pagegraph) example:
  sites:
    example.com:
      filter: example\.com
      prefix: ^https?://(www\.)?example\.com/
      root: index
      directory: ./pages`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAuditCmd,
	}

	// Audit input flags
	cmd.Flags().StringP("site", "s", "",
		"Site name (selects site settings from the config file and keys run history)")
	cmd.Flags().String("filter", config.DefaultFilterPattern,
		"Regular expression a link must match to count as internal")
	cmd.Flags().String("prefix", config.DefaultPrefixPattern,
		"Regular expression stripped from the front of internal links")
	cmd.Flags().StringP("root", "r", config.DefaultRootID,
		"Page identifier reachability starts from")
	cmd.Flags().Int("jobs", 0,
		"Number of pages to extract concurrently (0 = one per CPU)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pagegraph in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Graph output flags
	cmd.Flags().String("dot", "",
		"Write the graph in DOT form to this file (\"-\" for stdout)")
	cmd.Flags().String("svg", "",
		"Render the graph to SVG and write it to this file")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record the run summary in the history database")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildAuditConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	saveHistory := cfg.SaveHistory
	dotTarget, err := cmd.Flags().GetString("dot")
	if err != nil {
		return err
	}
	svgTarget, err := cmd.Flags().GetString("svg")
	if err != nil {
		return err
	}

	return runAudit(ctx, cfg, logger, cmd.OutOrStdout(), dotTarget, svgTarget, saveHistory)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildAuditConfig creates a Config from the config file and cobra flags.
// Config file values apply first; explicitly set flags win over them.
func buildAuditConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Site, err = cmd.Flags().GetString("site")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If the user explicitly specified a config file path, error if not found.
	// If no path is specified, silently use an empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	// Apply the site's configuration before flags so flags win
	cfg.Apply(cfg.SiteConfigs.GetSiteConfig(cfg.Site))

	if cmd.Flags().Changed("filter") {
		cfg.FilterPattern, err = cmd.Flags().GetString("filter")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("prefix") {
		cfg.PrefixPattern, err = cmd.Flags().GetString("prefix")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("root") {
		cfg.RootID, err = cmd.Flags().GetString("root")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs, err = cmd.Flags().GetInt("jobs")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noSave

	if cmd.Flags().Changed("db-dir") {
		cfg.DBDir, err = cmd.Flags().GetString("db-dir")
		if err != nil {
			return nil, err
		}
	}

	// The positional argument wins over the config file directory
	if len(args) > 0 {
		cfg.Directory = args[0]
	}

	// Default the site name to the corpus directory name
	if cfg.Site == "" {
		cfg.Site = filepath.Base(cfg.Directory)
	}

	return cfg, nil
}

// runAudit executes the audit and emits reports and graph output.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer, dotTarget, svgTarget string, saveHistory bool) error {
	norm, err := normalize.New(normalize.Config{
		FilterPattern: cfg.FilterPattern,
		PrefixPattern: cfg.PrefixPattern,
	})
	if err != nil {
		return fmt.Errorf("invalid normalization patterns: %w", err)
	}

	logger.Info("starting audit",
		"site", cfg.Site,
		"directory", cfg.Directory,
		"root", cfg.RootID,
		"jobs", cfg.Jobs,
	)

	p := pipeline.DefaultPipeline(cfg.Directory, norm, cfg.RootID, cfg.Jobs,
		pipeline.WithLogger(logger),
	)

	state := pipeline.NewState(model.NewAuditReport(cfg.Site, cfg.Directory))

	startTime := time.Now()
	if err := p.Execute(ctx, state); err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	logger.Info("audit completed",
		"elapsed", time.Since(startTime).Round(time.Millisecond),
		"orphans", state.Report.OrphanCount(),
	)

	if err := outputReport(cfg, state.Report, stdout); err != nil {
		return fmt.Errorf("report output failed: %w", err)
	}

	if dotTarget != "" || svgTarget != "" {
		if err := outputGraph(ctx, state, dotTarget, svgTarget, stdout); err != nil {
			return err
		}
	}

	if saveHistory {
		if err := saveRunSummary(ctx, cfg, state.Report, logger); err != nil {
			logger.Error("failed to save run summary", "error", err)
		}
	}

	return nil
}

// outputReport outputs the audit report in the requested format.
func outputReport(cfg *config.Config, auditReport *model.AuditReport, stdout io.Writer) error {
	// Determine output destination
	var output io.Writer = stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output)
	}

	_, err := w.Write(auditReport)
	return err
}

// outputGraph writes the graph in DOT form and optionally renders SVG.
func outputGraph(ctx context.Context, state *pipeline.State, dotTarget, svgTarget string, stdout io.Writer) error {
	labels := make(map[model.PageID]string, len(state.Report.Pages))
	for _, page := range state.Report.Pages {
		if page.Title != "" {
			labels[page.ID] = page.Title
		}
	}

	dot := render.ToDOT(state.Graph, render.DOTOptions{
		Orphans: state.Report.Orphans,
		Labels:  labels,
	})

	switch dotTarget {
	case "":
		// DOT output not requested
	case "-":
		if _, err := io.WriteString(stdout, dot); err != nil {
			return fmt.Errorf("failed to write DOT: %w", err)
		}
	default:
		if err := os.WriteFile(dotTarget, []byte(dot), 0600); err != nil {
			return fmt.Errorf("failed to write DOT file: %w", err)
		}
	}

	if svgTarget != "" {
		svg, err := render.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("failed to render SVG: %w", err)
		}
		if err := os.WriteFile(svgTarget, svg, 0600); err != nil {
			return fmt.Errorf("failed to write SVG file: %w", err)
		}
	}

	return nil
}

// saveRunSummary records the run in the history database.
func saveRunSummary(ctx context.Context, cfg *config.Config, auditReport *model.AuditReport, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, auditReport)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run summary saved", "id", id, "site", auditReport.Site, "dir", cfg.DBDir)
	return nil
}
