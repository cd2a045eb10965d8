package tmsim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/internal/presentation/graph"
	"github.com/aretw0/tmsim/internal/runtime"
	"github.com/aretw0/tmsim/internal/validator"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/aretw0/tmsim/pkg/ports"
)

// DefaultMaxSteps is the step budget applied to each input string (0: unbounded).
const DefaultMaxSteps = runtime.DefaultMaxSteps

// Finding is a static-analysis warning returned by Validate.
type Finding = validator.Finding

// Simulator is the high-level entry point for the tmsim library.
// It wraps the loader and the runtime and persists reports to a ReportStore.
type Simulator struct {
	engine  *runtime.Engine
	parser  *compiler.Parser
	store   ports.ReportStore
	metrics *observability.Metrics
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	maxSteps      int
	workers       int
	blank         string
	emptySentinel string
}

var _ ports.Simulator = (*Simulator)(nil)

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithMaxSteps bounds the number of transitions applied per input string.
// Zero leaves runs unbounded.
func WithMaxSteps(n int) Option {
	return func(s *Simulator) {
		s.maxSteps = n
	}
}

// WithWorkers sets how many input strings are simulated concurrently.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		s.workers = n
	}
}

// WithBlank overrides the blank symbol (default "B").
func WithBlank(blank string) Option {
	return func(s *Simulator) {
		s.blank = blank
	}
}

// WithEmptySentinel overrides the line that denotes the empty input string (default "-").
func WithEmptySentinel(sentinel string) Option {
	return func(s *Simulator) {
		s.emptySentinel = sentinel
	}
}

// WithStore sets where Run persists reports (default: in memory).
func WithStore(store ports.ReportStore) Option {
	return func(s *Simulator) {
		s.store = store
	}
}

// WithMetrics records simulations and load failures in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Simulator) {
		s.metrics = m
	}
}

// New initializes a Simulator.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		maxSteps:      DefaultMaxSteps,
		workers:       1,
		blank:         domain.DefaultBlank,
		emptySentinel: compiler.DefaultEmptySentinel,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}

	hooks := s.hooks
	if s.metrics != nil {
		hooks = domain.ChainHooks(hooks, s.metrics.Hooks())
	}

	s.parser = compiler.NewParser(
		compiler.WithBlank(s.blank),
		compiler.WithEmptySentinel(s.emptySentinel),
	)
	s.engine = runtime.NewEngine(
		runtime.WithLifecycleHooks(hooks),
		runtime.WithLogger(s.logger),
		runtime.WithMaxSteps(s.maxSteps),
		runtime.WithWorkers(s.workers),
	)
	return s
}

// Parse loads and validates a textual machine description.
func (s *Simulator) Parse(r io.Reader) (*domain.MachineSpec, error) {
	spec, err := s.parser.Parse(r)
	if err != nil {
		s.loadFailed(err)
		return nil, err
	}
	return spec, nil
}

// LoadFile parses the machine description stored at path.
func (s *Simulator) LoadFile(path string) (*domain.MachineSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine description: %w", err)
	}
	defer f.Close()

	spec, err := s.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

func (s *Simulator) loadFailed(err error) {
	s.logger.Debug("machine description rejected", "kind", domain.ErrorKind(err), "error", err)
	if s.metrics != nil {
		s.metrics.ObserveLoadError(err)
	}
}

// Evaluate simulates every input string of spec, in declaration order.
func (s *Simulator) Evaluate(ctx context.Context, spec *domain.MachineSpec) ([]domain.Result, error) {
	return s.engine.Evaluate(ctx, spec)
}

// Trace simulates a single input string and returns each applied step.
func (s *Simulator) Trace(ctx context.Context, spec *domain.MachineSpec, input string) (domain.Result, []domain.StepEvent, error) {
	return s.engine.Trace(ctx, spec, input)
}

// Run evaluates spec and saves the resulting report to the store.
// source labels the report (typically the description's file name) and may be empty.
func (s *Simulator) Run(ctx context.Context, spec *domain.MachineSpec, source string) (*domain.Report, error) {
	results, err := s.Evaluate(ctx, spec)
	if err != nil {
		return nil, err
	}

	report := domain.NewReport(source, results)
	if err := s.store.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	accepted, rejected := report.Summary()
	s.logger.InfoContext(ctx, "report saved", "id", report.ID, "accepted", accepted, "rejected", rejected)
	return report, nil
}

// Validate returns static-analysis warnings for a loaded machine.
func (s *Simulator) Validate(spec *domain.MachineSpec) []Finding {
	return validator.Analyze(spec)
}

// Graph renders the transition function as a Mermaid state diagram.
func (s *Simulator) Graph(spec *domain.MachineSpec) string {
	return graph.GenerateMermaid(spec, nil)
}

// Store returns the report store used by Run.
func (s *Simulator) Store() ports.ReportStore {
	return s.store
}
