package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinTape(t *testing.T) {
	assert.NotEqual(t, JoinTape([]string{"ab"}), JoinTape([]string{"a", "b"}))
	assert.Equal(t, JoinTape([]string{"a", "b"}), JoinTape([]string{"a", "b"}))
	assert.Equal(t, "", JoinTape(nil))
}

func TestChainHooks(t *testing.T) {
	var calls []string
	a := LifecycleHooks{OnStep: func(context.Context, *StepEvent) { calls = append(calls, "a.step") }}
	b := LifecycleHooks{
		OnStep: func(context.Context, *StepEvent) { calls = append(calls, "b.step") },
		OnHalt: func(context.Context, *HaltEvent) { calls = append(calls, "b.halt") },
	}

	h := ChainHooks(a, LifecycleHooks{}, b)
	h.OnStep(context.Background(), &StepEvent{})
	h.OnHalt(context.Background(), &HaltEvent{})
	assert.Equal(t, []string{"a.step", "b.step", "b.halt"}, calls)

	empty := ChainHooks()
	assert.Nil(t, empty.OnStep)
	assert.Nil(t, empty.OnHalt)
}

func TestVerdictJSON(t *testing.T) {
	data, err := json.Marshal(Result{Input: "0", Verdict: Accept, Reason: ReasonAcceptState})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"verdict":"accept"`)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(`{"verdict":"reject"}`), &res))
	assert.Equal(t, Reject, res.Verdict)
	assert.Error(t, json.Unmarshal([]byte(`{"verdict":"maybe"}`), &res))
}

func TestTokensAndSummary(t *testing.T) {
	assert.Equal(t, "aceita", DefaultTokens.Format(Accept))
	assert.Equal(t, "rejeita", DefaultTokens.Format(Reject))

	r := NewReport("entrada.txt", []Result{{Verdict: Accept}, {Verdict: Reject}, {Verdict: Reject}})
	assert.NotEmpty(t, r.ID)
	acc, rej := r.Summary()
	assert.Equal(t, 1, acc)
	assert.Equal(t, 2, rej)
}
