package ports

import (
	"context"
	"io"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Simulator is the interface used by adapters (HTTP, MCP) to load and run machines.
// Implementations hold no per-request state.
type Simulator interface {
	// Parse loads and validates a textual machine description.
	Parse(r io.Reader) (*domain.MachineSpec, error)

	// Evaluate simulates every input string of spec, in declaration order.
	Evaluate(ctx context.Context, spec *domain.MachineSpec) ([]domain.Result, error)

	// Trace simulates a single input string and returns each applied step.
	Trace(ctx context.Context, spec *domain.MachineSpec, input string) (domain.Result, []domain.StepEvent, error)
}
