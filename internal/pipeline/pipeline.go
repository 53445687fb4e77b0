package pipeline

import (
	"context"
	"log/slog"

	"github.com/barafael/page-graph/internal/graph"
	"github.com/barafael/page-graph/internal/model"
)

// State is the shared working set the steps read and write. The report
// accumulates serializable results; the graph is the in-memory structure
// later handed to the serializer and is never persisted.
type State struct {
	// Report accumulates the audit results.
	Report *model.AuditReport

	// Graph is the page graph, set by the graph build step.
	Graph *graph.PageGraph
}

// NewState creates a State around a fresh report.
func NewState(report *model.AuditReport) *State {
	return &State{Report: report}
}

// Step defines the interface all audit steps implement. Steps run in
// sequence, each receiving the accumulated state of the previous ones.
//
// Design decision: We use an interface rather than function types because:
//  1. It allows steps to carry configuration state
//  2. It provides a Name() method for logging and debugging
//  3. It's more extensible for future features
type Step interface {
	// Do executes the step. It receives the context for cancellation and
	// the state to modify. Returns an error only for critical failures;
	// expected drop paths (filtered references, absent root) are results,
	// not errors.
	Do(ctx context.Context, state *State) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep executing after a
// step fails. Failed steps are logged and recorded on the report.
//
// The default is to stop: a failed corpus read means every later step
// would operate on a partial linkage map and report false orphans.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a Pipeline with the given options.
// Steps are added with AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence, checking for cancellation between
// steps. Returns the first error when continueOnError is false.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("audit cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"site", state.Report.Site,
		)

		if err := step.Do(ctx, state); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"site", state.Report.Site,
				"error", err,
			)

			state.Report.Error = err
			state.Report.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"site", state.Report.Site,
			)
		}

		state.Report.PerformedSteps = append(state.Report.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
