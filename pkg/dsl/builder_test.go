package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/tmsim/internal/runtime"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Binary(t *testing.T) {
	spec, err := New(2).
		Terminals("0", "1").
		Accept(1).
		On(0, "0").Write("1").Right().Goto(1).
		Inputs("0", "1").
		Build()
	require.NoError(t, err)

	tr, ok := spec.Lookup(0, "0")
	require.True(t, ok)
	assert.Equal(t, domain.Transition{From: 0, Read: "0", To: 1, Write: "1", Move: domain.Right}, tr)

	results, err := runtime.NewEngine().Evaluate(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, domain.Accept, results[0].Verdict)
	assert.Equal(t, domain.Reject, results[1].Verdict)
}

func TestBuilder_Defaults(t *testing.T) {
	spec := New(3).Terminals("a").On(0, "a").Goto(2).MustBuild()

	assert.Equal(t, 2, spec.AcceptState())
	tr, ok := spec.Lookup(0, "a")
	require.True(t, ok)
	assert.Equal(t, "a", tr.Write)
	assert.Equal(t, domain.Stay, tr.Move)
}

func TestBuilder_Invalid(t *testing.T) {
	_, err := New(1).
		Terminals("a").
		On(0, "a").Goto(0).
		On(0, "a").Left().Goto(0).
		Build()
	assert.ErrorIs(t, err, domain.ErrDuplicateTransition)

	_, err = New(11).Build()
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)

	assert.Panics(t, func() {
		New(2).Terminals("a").On(0, "z").Goto(1).MustBuild()
	})
}
