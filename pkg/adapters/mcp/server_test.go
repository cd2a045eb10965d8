package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const binaryMachine = "2\n2 0 1\n1 B\n1\n1\n0 0 1 1 R\n3\n0\n1\n-\n"

func newTestServer() (*Server, *memory.Store) {
	store := memory.NewStore()
	return NewServer(tmsim.New(tmsim.WithStore(store))), store
}

func TestHandleSimulate(t *testing.T) {
	s, store := newTestServer()
	ctx := context.Background()

	resp, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"spec": binaryMachine})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, domain.Accept, resp.Results[0].Verdict)
	assert.Equal(t, domain.Reject, resp.Results[1].Verdict)

	report, err := store.Load(ctx, resp.ReportID)
	require.NoError(t, err)
	assert.Equal(t, "mcp", report.Source)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"spec": "x"})
	assert.ErrorIs(t, err, domain.ErrMalformedField)
}

func TestHandleSimulate_OverrideInputs(t *testing.T) {
	s, _ := newTestServer()
	ctx := context.Background()

	resp, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"spec":   binaryMachine,
		"inputs": []interface{}{"1", "00", ""},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, domain.Reject, resp.Results[0].Verdict)
	assert.Equal(t, "00", resp.Results[1].Input)
	assert.Equal(t, domain.Accept, resp.Results[1].Verdict)
	assert.Equal(t, domain.Reject, resp.Results[2].Verdict)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"spec":   binaryMachine,
		"inputs": []interface{}{"0", 7},
	})
	assert.Error(t, err)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"spec":   binaryMachine,
		"inputs": []interface{}{"000000000000000000000"},
	})
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestHandleValidate(t *testing.T) {
	s, _ := newTestServer()
	ctx := context.Background()

	resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"spec": binaryMachine})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Findings)

	resp, err = s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"spec": "2\n2 0 1\n0\n1\n1\n0 0 1 1 X\n0\n"})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "InvalidDirection", resp.Kind)
	assert.Contains(t, resp.Error, "line 6")
}

func TestHandleTrace(t *testing.T) {
	s, _ := newTestServer()
	ctx := context.Background()

	resp, err := s.handleTrace(ctx, mcp.CallToolRequest{}, map[string]interface{}{"spec": binaryMachine, "input": "0"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonAcceptState, resp.Result.Reason)
	require.Len(t, resp.Steps, 1)
	assert.Equal(t, []string{"0"}, resp.Steps[0].Tape)

	resp, err = s.handleTrace(ctx, mcp.CallToolRequest{}, map[string]interface{}{"spec": binaryMachine})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonNoTransition, resp.Result.Reason)
	assert.Empty(t, resp.Steps)

	_, err = s.handleTrace(ctx, mcp.CallToolRequest{}, map[string]interface{}{"spec": binaryMachine, "input": "000000000000000000000"})
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
}

func TestHandleGraph(t *testing.T) {
	s, _ := newTestServer()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"spec": binaryMachine}
	result, err := s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "q0 --> q1: 0/1, R")

	req.Params.Arguments = map[string]any{"spec": ""}
	result, err = s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
