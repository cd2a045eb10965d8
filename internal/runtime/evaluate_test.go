package runtime_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/tmsim/internal/runtime"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Evaluate_Order(t *testing.T) {
	spec := binary(t)

	for _, workers := range []int{1, 4} {
		engine := runtime.NewEngine(runtime.WithWorkers(workers))
		results, err := engine.Evaluate(context.Background(), spec)
		require.NoError(t, err)

		require.Len(t, results, 3)
		assert.Equal(t, "0", results[0].Input)
		assert.Equal(t, domain.Accept, results[0].Verdict)
		assert.Equal(t, "1", results[1].Input)
		assert.Equal(t, domain.Reject, results[1].Verdict)
		assert.Equal(t, "", results[2].Input)
		assert.Equal(t, domain.Reject, results[2].Verdict)
	}
}

func TestEngine_Evaluate_Isolation(t *testing.T) {
	// Each run overwrites its tape; a shared tape would leak "X" into the next input.
	spec := mustSpec(t, domain.Definition{
		NumStates: 2,
		Terminals: []string{"a"},
		Extended:  []string{"X"},
		Accept:    1,
		Transitions: []domain.Transition{
			{From: 0, Read: "a", To: 0, Write: "X", Move: domain.Right},
			{From: 0, Read: "X", To: 1, Write: "X", Move: domain.Stay},
		},
		Inputs: []string{"aa", "aa", strings.Repeat("a", 20)},
	})

	results, err := runtime.NewEngine(runtime.WithWorkers(3)).Evaluate(context.Background(), spec)
	require.NoError(t, err)
	for _, res := range results {
		assert.Equal(t, domain.Reject, res.Verdict)
		assert.Equal(t, domain.ReasonNoTransition, res.Reason)
	}
}

func TestEngine_Evaluate_NoInputs(t *testing.T) {
	spec := mustSpec(t, domain.Definition{NumStates: 1, Accept: 0})

	results, err := runtime.NewEngine().Evaluate(context.Background(), spec)
	require.NoError(t, err)
	assert.Empty(t, results)
}
