package domain

import "context"

// Configuration is a complete snapshot of one simulation step.
// Head is relative to the leftmost materialized cell; Tape is the joined tape
// contents (see JoinTape). The struct is comparable and used as a set key.
type Configuration struct {
	State int
	Head  int
	Tape  string
}

// tapeSeparator keeps multi-character symbols from colliding in snapshots.
const tapeSeparator = "\x1f"

// JoinTape renders tape cells as a value-comparable snapshot.
func JoinTape(cells []string) string {
	n := 0
	for _, c := range cells {
		n += len(c) + 1
	}
	b := make([]byte, 0, n)
	for i, c := range cells {
		if i > 0 {
			b = append(b, tapeSeparator...)
		}
		b = append(b, c...)
	}
	return string(b)
}

// StepEvent is emitted before a transition is applied.
type StepEvent struct {
	Input      string     `json:"input"`
	Step       int        `json:"step"`
	State      int        `json:"state"`
	Head       int        `json:"head"`
	Tape       []string   `json:"tape"`
	Transition Transition `json:"transition"`
}

// HaltEvent is emitted once per simulation with its verdict.
type HaltEvent struct {
	Result Result `json:"result"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the simulating goroutine.
type LifecycleHooks struct {
	OnStep func(context.Context, *StepEvent)
	OnHalt func(context.Context, *HaltEvent)
}

// ChainHooks combines several hook sets; callbacks run in argument order.
func ChainHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var steps []func(context.Context, *StepEvent)
	var halts []func(context.Context, *HaltEvent)
	for _, h := range hooks {
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnHalt != nil {
			halts = append(halts, h.OnHalt)
		}
	}

	var out LifecycleHooks
	if len(steps) > 0 {
		out.OnStep = func(ctx context.Context, e *StepEvent) {
			for _, fn := range steps {
				fn(ctx, e)
			}
		}
	}
	if len(halts) > 0 {
		out.OnHalt = func(ctx context.Context, e *HaltEvent) {
			for _, fn := range halts {
				fn(ctx, e)
			}
		}
	}
	return out
}
