package tmsim_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Accepts strings of the form 0*1.
const zerosThenOne = `3
2 0 1
1 B
2
2
0 0 0 0 R
0 1 2 1 R
4
0001
1
00
-
`

func TestSimulator_Run(t *testing.T) {
	store := memory.NewStore()
	sim := tmsim.New(tmsim.WithStore(store), tmsim.WithWorkers(2))

	spec, err := sim.Parse(strings.NewReader(zerosThenOne))
	require.NoError(t, err)

	report, err := sim.Run(context.Background(), spec, "zeros.txt")
	require.NoError(t, err)

	verdicts := make([]domain.Verdict, len(report.Results))
	for i, r := range report.Results {
		verdicts[i] = r.Verdict
	}
	assert.Equal(t, []domain.Verdict{domain.Accept, domain.Accept, domain.Reject, domain.Reject}, verdicts)
	assert.Equal(t, "zeros.txt", report.Source)

	loaded, err := store.Load(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Results, loaded.Results)
	assert.Same(t, store, sim.Store())
}

func TestSimulator_LoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "entrada.txt")
	require.NoError(t, os.WriteFile(good, []byte(zerosThenOne), 0o644))

	sim := tmsim.New()
	spec, err := sim.LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, 3, spec.NumStates())

	_, err = sim.LoadFile(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("11\n"), 0o644))
	_, err = sim.LoadFile(bad)
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestSimulator_CustomSymbols(t *testing.T) {
	sim := tmsim.New(tmsim.WithBlank("_"), tmsim.WithEmptySentinel("<empty>"))

	src := strings.NewReplacer("B", "_", "-\n", "<empty>\n").Replace(zerosThenOne)
	spec, err := sim.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "_", spec.Blank())
	assert.Equal(t, "", spec.Inputs()[3])
}

func TestSimulator_Metrics(t *testing.T) {
	m := observability.NewMetrics(nil)
	sim := tmsim.New(tmsim.WithMetrics(m))

	spec, err := sim.Parse(strings.NewReader(zerosThenOne))
	require.NoError(t, err)
	_, err = sim.Evaluate(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Simulations.WithLabelValues("accept", "accept_state")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Simulations.WithLabelValues("reject", "no_transition")))

	_, err = sim.Parse(strings.NewReader("2\n"))
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoadFailures.WithLabelValues("UnexpectedEOF")))
}

func TestSimulator_DefaultBudgetIsUnbounded(t *testing.T) {
	const counter = "3\n2 0 1\n1 B\n2\n6\n0 0 0 0 R\n0 1 0 1 R\n0 B 1 B L\n1 1 1 0 L\n1 0 0 1 R\n1 B 2 B S\n1\n000000000000\n"

	sim := tmsim.New()
	spec, err := sim.Parse(strings.NewReader(counter))
	require.NoError(t, err)

	results, err := sim.Evaluate(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.Accept, results[0].Verdict)
	assert.Equal(t, 16382, results[0].Steps)
}

func TestSimulator_HooksAndStepBudget(t *testing.T) {
	// Walks right forever over blanks.
	const runaway = "2\n1 0\n1 B\n1\n2\n0 0 0 0 R\n0 B 0 B R\n1\n0\n"

	var halts int
	sim := tmsim.New(
		tmsim.WithMaxSteps(50),
		tmsim.WithLifecycleHooks(domain.LifecycleHooks{
			OnHalt: func(context.Context, *domain.HaltEvent) { halts++ },
		}),
	)
	spec, err := sim.Parse(strings.NewReader(runaway))
	require.NoError(t, err)

	results, err := sim.Evaluate(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.ReasonStepLimit, results[0].Reason)
	assert.Equal(t, 50, results[0].Steps)
	assert.Equal(t, 1, halts)
}

func TestSimulator_ValidateAndGraph(t *testing.T) {
	sim := tmsim.New()
	spec, err := sim.Parse(strings.NewReader(zerosThenOne))
	require.NoError(t, err)

	findings := sim.Validate(spec)
	require.Len(t, findings, 1)
	assert.Equal(t, "unreachable_state", findings[0].Code)
	assert.Contains(t, findings[0].Message, "q1")

	assert.Contains(t, sim.Graph(spec), "q0 --> q2: 1/1, R")
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(tmsim.Version))
}
