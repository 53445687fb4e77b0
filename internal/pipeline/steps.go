package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/barafael/page-graph/internal/corpus"
	"github.com/barafael/page-graph/internal/extract"
	"github.com/barafael/page-graph/internal/graph"
	"github.com/barafael/page-graph/internal/model"
	"github.com/barafael/page-graph/internal/normalize"
)

// CorpusStep reads the corpus directory into the report.
// A read failure aborts the audit; the later steps must never operate on
// a partial corpus.
type CorpusStep struct {
	// dir is the corpus directory to read.
	dir string

	// logger for structured logging.
	logger *slog.Logger
}

// NewCorpusStep creates the corpus read step for the given directory.
func NewCorpusStep(dir string, logger *slog.Logger) *CorpusStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CorpusStep{dir: dir, logger: logger}
}

// Name returns the step name.
func (s *CorpusStep) Name() string {
	return "read_corpus"
}

// Do reads every page file in the corpus directory.
func (s *CorpusStep) Do(_ context.Context, state *State) error {
	pages, err := corpus.NewReader(s.dir).ReadAll()
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	state.Report.Pages = pages
	s.logger.Info("corpus read", "dir", s.dir, "pages", len(pages))
	return nil
}

// ExtractStep extracts and normalizes references from every page, filling
// the report's linkage map.
//
// Each page's extraction is independent of every other page's, so the
// work fans out across an errgroup; the linkage map write is the only
// synchronization point. Graph building and reachability run strictly
// after the full map exists.
type ExtractStep struct {
	// pipeline owns the compiled normalization patterns.
	pipeline *normalize.Pipeline

	// jobs bounds the number of concurrent page extractions.
	jobs int

	// logger for structured logging.
	logger *slog.Logger
}

// ExtractStepOption configures an ExtractStep.
type ExtractStepOption func(*ExtractStep)

// WithExtractJobs bounds the number of concurrent page extractions.
// Values below one fall back to GOMAXPROCS.
func WithExtractJobs(n int) ExtractStepOption {
	return func(s *ExtractStep) {
		if n > 0 {
			s.jobs = n
		}
	}
}

// WithExtractLogger sets a custom logger for the extraction step.
func WithExtractLogger(logger *slog.Logger) ExtractStepOption {
	return func(s *ExtractStep) {
		s.logger = logger
	}
}

// NewExtractStep creates the extraction step around a normalization
// pipeline.
func NewExtractStep(pipeline *normalize.Pipeline, opts ...ExtractStepOption) *ExtractStep {
	s := &ExtractStep{
		pipeline: pipeline,
		jobs:     runtime.GOMAXPROCS(0),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract_links"
}

// Do runs extraction and normalization for every page.
func (s *ExtractStep) Do(ctx context.Context, state *State) error {
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)

	for _, page := range state.Report.Pages {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			refs := extract.Links(string(page.Raw))
			ids := s.pipeline.Normalize(refs)

			mu.Lock()
			state.Report.Linkage.Add(page.ID, ids)
			mu.Unlock()

			s.logger.Debug("page extracted",
				"page", page.ID,
				"raw_refs", len(refs),
				"normalized", len(ids),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("extract links: %w", err)
	}

	s.logger.Info("extraction complete",
		"pages", state.Report.Linkage.Pages(),
		"references", state.Report.Linkage.Targets(),
	)
	return nil
}

// GraphStep derives the page graph from the completed linkage map.
// The operation cannot fail given a well-formed map.
type GraphStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewGraphStep creates the graph build step.
func NewGraphStep(logger *slog.Logger) *GraphStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphStep{logger: logger}
}

// Name returns the step name.
func (s *GraphStep) Name() string {
	return "build_graph"
}

// Do builds the graph and records its size on the report.
func (s *GraphStep) Do(_ context.Context, state *State) error {
	state.Graph = graph.FromLinkage(state.Report.Linkage)
	state.Report.NodeCount = state.Graph.NodeCount()
	state.Report.EdgeCount = state.Graph.EdgeCount()

	s.logger.Info("graph built",
		"nodes", state.Report.NodeCount,
		"edges", state.Report.EdgeCount,
	)
	return nil
}

// OrphanStep computes the orphan set by depth-first reachability from the
// configured root identifier.
type OrphanStep struct {
	// root is the entry page identifier.
	root model.PageID

	// logger for structured logging.
	logger *slog.Logger
}

// NewOrphanStep creates the reachability analysis step.
func NewOrphanStep(root model.PageID, logger *slog.Logger) *OrphanStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrphanStep{root: root, logger: logger}
}

// Name returns the step name.
func (s *OrphanStep) Name() string {
	return "find_orphans"
}

// Do walks the graph from the root and records the unreachable nodes.
// An absent root is a valid outcome: every node is reported.
func (s *OrphanStep) Do(_ context.Context, state *State) error {
	if state.Graph == nil {
		return fmt.Errorf("orphan analysis requires a built graph")
	}

	state.Report.RootID = s.root
	state.Report.RootPresent = state.Graph.HasNode(s.root)
	state.Report.Orphans = state.Graph.Orphans(s.root)

	if !state.Report.RootPresent {
		s.logger.Warn("root identifier not present in graph; reporting all pages",
			"root", s.root,
		)
	}

	s.logger.Info("orphan analysis complete",
		"root", s.root,
		"orphans", len(state.Report.Orphans),
	)
	return nil
}

// DefaultPipeline assembles the standard audit pipeline: corpus read,
// extraction, graph build, orphan analysis.
func DefaultPipeline(dir string, norm *normalize.Pipeline, root model.PageID, jobs int, opts ...Option) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewCorpusStep(dir, p.logger),
		NewExtractStep(norm,
			WithExtractJobs(jobs),
			WithExtractLogger(p.logger),
		),
		NewGraphStep(p.logger),
		NewOrphanStep(root, p.logger),
	)

	return p
}
