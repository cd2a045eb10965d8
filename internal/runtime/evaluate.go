package runtime

import (
	"context"

	"github.com/aretw0/tmsim/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// Evaluate simulates every input string of spec in isolation and returns the
// results in declaration order. Up to the configured number of workers run
// concurrently; the shared spec is never mutated.
func (e *Engine) Evaluate(ctx context.Context, spec *domain.MachineSpec) ([]domain.Result, error) {
	inputs := spec.Inputs()
	results := make([]domain.Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, input := range inputs {
		g.Go(func() error {
			res, err := e.Simulate(gctx, spec, input)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "evaluation finished", "inputs", len(inputs))
	return results, nil
}
