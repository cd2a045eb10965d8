package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SimulateResponse is the structured result of simulate_machine.
type SimulateResponse struct {
	ReportID string          `json:"report_id" jsonschema_description:"Identifier of the stored report"`
	Results  []domain.Result `json:"results" jsonschema_description:"One verdict per input string, in declaration order"`
}

// ValidateResponse is the structured result of validate_machine.
type ValidateResponse struct {
	Valid    bool            `json:"valid" jsonschema_description:"True when the description loads"`
	Error    string          `json:"error,omitempty" jsonschema_description:"Loader error when the description is rejected"`
	Kind     string          `json:"kind,omitempty" jsonschema_description:"Error kind, e.g. UnknownState"`
	Findings []tmsim.Finding `json:"findings" jsonschema_description:"Static-analysis warnings"`
}

// TraceResponse is the structured result of trace_machine.
type TraceResponse struct {
	Result domain.Result      `json:"result" jsonschema_description:"Verdict for the input string"`
	Steps  []domain.StepEvent `json:"steps" jsonschema_description:"Every applied transition"`
}

// Simulator defines what the MCP server needs from the tmsim core.
type Simulator interface {
	ports.Simulator
	Run(ctx context.Context, spec *domain.MachineSpec, source string) (*domain.Report, error)
	Validate(spec *domain.MachineSpec) []tmsim.Finding
	Graph(spec *domain.MachineSpec) string
	Store() ports.ReportStore
}

// Server wraps the Simulator and exposes it as an MCP Server.
type Server struct {
	sim       Simulator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sim Simulator) *Server {
	s := &Server{
		sim:       sim,
		mcpServer: server.NewMCPServer("tmsim-mcp", strings.TrimSpace(tmsim.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on addr using SSE until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: simulate_machine
	simulateTool := mcp.NewTool("simulate_machine",
		mcp.WithDescription("Load a Turing machine description (tmsim text format) and decide every input string."),
		mcp.WithString("spec", mcp.Required(), mcp.Description("The machine description")),
		mcp.WithArray("inputs", mcp.WithStringItems(), mcp.Description("Replaces the input strings listed in the description")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: validate_machine
	validateTool := mcp.NewTool("validate_machine",
		mcp.WithDescription("Check a machine description for load errors and suspicious constructs."),
		mcp.WithString("spec", mcp.Required(), mcp.Description("The machine description")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: trace_machine
	traceTool := mcp.NewTool("trace_machine",
		mcp.WithDescription("Run a single input string and return every applied transition."),
		mcp.WithString("spec", mcp.Required(), mcp.Description("The machine description")),
		mcp.WithString("input", mcp.Description("Input string (empty for the empty string)")),
		mcp.WithOutputSchema[TraceResponse](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleTrace))

	// TOOL: graph_machine
	s.mcpServer.AddTool(mcp.NewTool("graph_machine",
		mcp.WithDescription("Render the transition function as a Mermaid state diagram."),
		mcp.WithString("spec", mcp.Required(), mcp.Description("The machine description")),
	), s.handleGraph)
}

func (s *Server) parse(args map[string]interface{}) (*domain.MachineSpec, error) {
	src, _ := args["spec"].(string)
	return s.sim.Parse(strings.NewReader(src))
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	spec, err := s.parse(args)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("load failed: %w", err)
	}
	if raw, ok := args["inputs"]; ok {
		inputs, err := stringList(raw)
		if err != nil {
			return SimulateResponse{}, err
		}
		if spec, err = spec.WithInputs(inputs); err != nil {
			return SimulateResponse{}, fmt.Errorf("input rejected: %w", err)
		}
	}
	report, err := s.sim.Run(ctx, spec, "mcp")
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulation failed: %w", err)
	}
	return SimulateResponse{ReportID: report.ID, Results: report.Results}, nil
}

// stringList accepts the decoded JSON array of the inputs argument.
func stringList(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("inputs[%d] is not a string", i)
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("inputs must be an array of strings")
	}
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	spec, err := s.parse(args)
	if err != nil {
		return ValidateResponse{
			Error:    err.Error(),
			Kind:     domain.ErrorKind(err),
			Findings: []tmsim.Finding{},
		}, nil
	}
	findings := s.sim.Validate(spec)
	if findings == nil {
		findings = []tmsim.Finding{}
	}
	return ValidateResponse{Valid: true, Findings: findings}, nil
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TraceResponse, error) {
	spec, err := s.parse(args)
	if err != nil {
		return TraceResponse{}, fmt.Errorf("load failed: %w", err)
	}
	input, _ := args["input"].(string)
	if err := domain.CheckInput(input); err != nil {
		return TraceResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	result, steps, err := s.sim.Trace(ctx, spec, input)
	if err != nil {
		return TraceResponse{}, fmt.Errorf("trace failed: %w", err)
	}
	if steps == nil {
		steps = []domain.StepEvent{}
	}
	return TraceResponse{Result: result, Steps: steps}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, _ := request.GetArguments()["spec"].(string)
	spec, err := s.sim.Parse(strings.NewReader(src))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	return mcp.NewToolResultText(s.sim.Graph(spec)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: tmsim://reports
	s.mcpServer.AddResource(mcp.NewResource("tmsim://reports", "Stored Report Identifiers",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.sim.Store().List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tmsim://reports",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
