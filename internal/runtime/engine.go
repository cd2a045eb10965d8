package runtime

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/aretw0/tmsim/pkg/domain"
)

// DefaultMaxSteps is the default step budget. Zero means unbounded: a run
// halts only on the accept state, a missing transition or a repeated
// configuration. Machines that grow the tape forever need an explicit budget.
const DefaultMaxSteps = 0

// ctxCheckInterval is how many steps run between context checks.
const ctxCheckInterval = 256

// Engine is the Turing machine simulator.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxSteps int
	workers  int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
// With more than one worker, hooks are called from several goroutines.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxSteps sets the step budget of a single simulation. Zero disables the
// budget; negative values are ignored.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.maxSteps = n
		}
	}
}

// WithWorkers sets how many input strings Evaluate simulates in parallel.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxSteps: DefaultMaxSteps,
		workers:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate runs spec on a single input string until it accepts, finds no
// applicable transition, repeats a configuration or exhausts an explicit step budget.
// The error is non-nil only when ctx is cancelled.
func (e *Engine) Simulate(ctx context.Context, spec *domain.MachineSpec, input string) (domain.Result, error) {
	t := newTape(input, spec.Blank())
	state := 0
	visited := make(map[domain.Configuration]struct{})

	for step := 0; ; step++ {
		if step%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Result{}, err
			}
		}

		cfg := domain.Configuration{State: state, Head: t.head, Tape: t.snapshot()}
		if _, seen := visited[cfg]; seen {
			return e.halt(ctx, input, domain.Reject, domain.ReasonCycle, step, state), nil
		}
		visited[cfg] = struct{}{}

		if state == spec.AcceptState() {
			return e.halt(ctx, input, domain.Accept, domain.ReasonAcceptState, step, state), nil
		}
		if e.maxSteps > 0 && step >= e.maxSteps {
			return e.halt(ctx, input, domain.Reject, domain.ReasonStepLimit, step, state), nil
		}

		t.materialize()
		tr, ok := spec.Lookup(state, t.read())
		if !ok {
			return e.halt(ctx, input, domain.Reject, domain.ReasonNoTransition, step, state), nil
		}

		if e.hooks.OnStep != nil {
			e.hooks.OnStep(ctx, &domain.StepEvent{
				Input:      input,
				Step:       step + 1,
				State:      state,
				Head:       t.head,
				Tape:       slices.Clone(t.cells),
				Transition: tr,
			})
		}

		t.write(tr.Write)
		state = tr.To
		t.move(tr.Move)
	}
}

func (e *Engine) halt(ctx context.Context, input string, v domain.Verdict, reason domain.Reason, steps, state int) domain.Result {
	res := domain.Result{
		Input:      input,
		Verdict:    v,
		Reason:     reason,
		Steps:      steps,
		FinalState: state,
	}
	e.logger.DebugContext(ctx, "simulation halted",
		"input", input,
		"verdict", v.String(),
		"reason", string(reason),
		"steps", steps,
		"state", domain.StateName(state),
	)
	if e.hooks.OnHalt != nil {
		e.hooks.OnHalt(ctx, &domain.HaltEvent{Result: res})
	}
	return res
}

// Trace simulates input and returns every applied step along with the result.
func (e *Engine) Trace(ctx context.Context, spec *domain.MachineSpec, input string) (domain.Result, []domain.StepEvent, error) {
	var steps []domain.StepEvent
	traced := *e
	traced.hooks = domain.ChainHooks(e.hooks, domain.LifecycleHooks{
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			steps = append(steps, *ev)
		},
	})
	res, err := traced.Simulate(ctx, spec, input)
	if err != nil {
		return domain.Result{}, nil, err
	}
	return res, steps, nil
}
