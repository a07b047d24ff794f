package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/terranova/density"
	"github.com/terranova/density/internal/presentation/graph"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

// DefaultMaxPoints bounds preview_grid. Agents read the whole grid, so it is
// much smaller than the HTTP limit.
const DefaultMaxPoints = 4096

// EvaluateArgs are the arguments of evaluate_point.
type EvaluateArgs struct {
	Document string  `json:"document"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Inputs   string  `json:"inputs,omitempty"`
}

// EvaluateResult aligns with the HTTP EvaluateResponse for a single point.
type EvaluateResult struct {
	Value *float64 `json:"value,omitempty" jsonschema_description:"Density at the point; absent when evaluation failed"`
	Error string   `json:"error,omitempty" jsonschema_description:"Evaluation error, if any"`
}

// PreviewArgs are the arguments of preview_grid.
type PreviewArgs struct {
	Document string `json:"document"`
	Domain   string `json:"domain"`
	Inputs   string `json:"inputs,omitempty"`
}

// PreviewResult carries the grid plus a summary an agent can read without scanning it.
type PreviewResult struct {
	Grid   *domain.Grid `json:"grid" jsonschema_description:"Evaluated lattice, values indexed (y*SZ+z)*SX+x"`
	Min    float64      `json:"min" jsonschema_description:"Smallest finite value"`
	Max    float64      `json:"max" jsonschema_description:"Largest finite value"`
	Solid  int          `json:"solid" jsonschema_description:"Number of points with a positive value"`
	Faults int          `json:"faults" jsonschema_description:"Number of points that failed"`
}

// DocumentArgs are the arguments of the tools that only take a document.
type DocumentArgs struct {
	Document string `json:"document"`
}

// ValidateResult reports the outcome of validate_document.
type ValidateResult struct {
	Valid bool   `json:"valid"`
	Kind  string `json:"kind,omitempty" jsonschema_description:"Error code, e.g. UnknownType or CyclicImport"`
	Error string `json:"error,omitempty"`
}

// ExportsResult lists the loaded pack.
type ExportsResult struct {
	Exports   []string `json:"exports"`
	Curves    []string `json:"curves"`
	Positions []string `json:"positions"`
}

// Server wraps the density Engine and exposes it as an MCP Server.
type Server struct {
	engine    *density.Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
	maxPoints int
}

// Option configures the Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMaxPoints overrides DefaultMaxPoints.
func WithMaxPoints(n int) Option {
	return func(s *Server) { s.maxPoints = n }
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *density.Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("density-mcp", strings.TrimSpace(density.Version)),
		logger:    slog.Default(),
		maxPoints: DefaultMaxPoints,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying protocol server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const documentHelp = "Density document as JSON text: a node such as {\"Type\":\"Sum\",\"Inputs\":[...]} or a {\"Density\":...} envelope"

func (s *Server) registerTools() {
	// TOOL: evaluate_point
	s.mcpServer.AddTool(mcp.NewTool("evaluate_point",
		mcp.WithDescription("Evaluate a density document at one world position. Positive values are solid, negative values are air."),
		mcp.WithString("document", mcp.Required(), mcp.Description(documentHelp)),
		mcp.WithNumber("x", mcp.Description("World X")),
		mcp.WithNumber("y", mcp.Description("World Y (up)")),
		mcp.WithNumber("z", mcp.Description("World Z")),
		mcp.WithString("inputs", mcp.Description(`JSON object of world inputs, e.g. {"terrain":64,"baseHeights":{"sea":62}} (optional)`)),
		mcp.WithOutputSchema[EvaluateResult](),
	), mcp.NewStructuredToolHandler(s.handleEvaluate))

	// TOOL: preview_grid
	s.mcpServer.AddTool(mcp.NewTool("preview_grid",
		mcp.WithDescription(fmt.Sprintf("Evaluate a density document over a lattice of at most %d points.", s.maxPoints)),
		mcp.WithString("document", mcp.Required(), mcp.Description(documentHelp)),
		mcp.WithString("domain", mcp.Required(), mcp.Description(`JSON lattice: {"origin":{"x":0,"y":0,"z":0},"step":{"x":1,"y":1,"z":1},"size":[16,1,16]}`)),
		mcp.WithString("inputs", mcp.Description("JSON object of world inputs (optional)")),
		mcp.WithOutputSchema[PreviewResult](),
	), mcp.NewStructuredToolHandler(s.handlePreview))

	// TOOL: validate_document
	s.mcpServer.AddTool(mcp.NewTool("validate_document",
		mcp.WithDescription("Parse and resolve a density document against the loaded pack without evaluating it."),
		mcp.WithString("document", mcp.Required(), mcp.Description(documentHelp)),
		mcp.WithOutputSchema[ValidateResult](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: list_exports
	s.mcpServer.AddTool(mcp.NewTool("list_exports",
		mcp.WithDescription("List the exports, curves and positions of the loaded asset pack."),
		mcp.WithOutputSchema[ExportsResult](),
	), mcp.NewStructuredToolHandler(s.handleExports))

	// TOOL: render_graph
	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render a density document as a Mermaid flowchart."),
		mcp.WithString("document", mcp.Required(), mcp.Description(documentHelp)),
	), s.handleGraph)
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, _ := request.GetArguments()["document"].(string)
	root, err := s.engine.Parse([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(root, nil)), nil
}

// Handler methods for structured tools

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args EvaluateArgs) (EvaluateResult, error) {
	inputs, err := parseInputs(args.Inputs)
	if err != nil {
		return EvaluateResult{}, err
	}
	prog, err := s.engine.Compile(ctx, []byte(args.Document))
	if err != nil {
		return EvaluateResult{}, fmt.Errorf("compile failed: %w", err)
	}

	v, err := s.engine.Evaluate(ctx, prog, domain.Vec3{X: args.X, Y: args.Y, Z: args.Z}, inputs.Context())
	if err != nil {
		// A failed sample is an answer, not a tool failure
		return EvaluateResult{Error: err.Error()}, nil
	}
	return EvaluateResult{Value: &v}, nil
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest, args PreviewArgs) (PreviewResult, error) {
	var dom domain.Domain
	if err := json.Unmarshal([]byte(args.Domain), &dom); err != nil {
		return PreviewResult{}, fmt.Errorf("invalid domain: %w", err)
	}
	if err := dom.Validate(); err != nil {
		return PreviewResult{}, err
	}
	if n := dom.Len(); n > s.maxPoints {
		return PreviewResult{}, fmt.Errorf("domain has %d points, limit is %d", n, s.maxPoints)
	}
	inputs, err := parseInputs(args.Inputs)
	if err != nil {
		return PreviewResult{}, err
	}

	prog, err := s.engine.Compile(ctx, []byte(args.Document))
	if err != nil {
		return PreviewResult{}, fmt.Errorf("compile failed: %w", err)
	}
	grid, err := s.engine.EvaluateGrid(ctx, prog, dom, inputs.Context())
	if err != nil {
		return PreviewResult{}, err
	}
	return summarize(grid), nil
}

func summarize(grid *domain.Grid) PreviewResult {
	res := PreviewResult{Grid: grid, Faults: len(grid.Faults), Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range grid.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		res.Min = math.Min(res.Min, v)
		res.Max = math.Max(res.Max, v)
		if v > 0 {
			res.Solid++
		}
	}
	if res.Min > res.Max {
		// Every point failed
		res.Min, res.Max = 0, 0
	}
	return res
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (ValidateResult, error) {
	err := s.engine.Validate([]byte(args.Document))
	if err == nil {
		return ValidateResult{Valid: true}, nil
	}

	res := ValidateResult{Error: err.Error()}
	var (
		schemaErr  *domain.SchemaError
		resolveErr *domain.ResolveError
	)
	switch {
	case errors.As(err, &schemaErr):
		res.Kind = string(schemaErr.Kind)
	case errors.As(err, &resolveErr):
		res.Kind = string(resolveErr.Kind)
	}
	return res, nil
}

func (s *Server) handleExports(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExportsResult, error) {
	reg := s.engine.Registry()
	return ExportsResult{
		Exports:   nonNil(reg.ExportNames()),
		Curves:    nonNil(reg.CurveNames()),
		Positions: nonNil(reg.PositionsNames()),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: density://exports
	s.mcpServer.AddResource(mcp.NewResource("density://exports", "Loaded Pack Exports",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		res, _ := s.handleExports(ctx, mcp.CallToolRequest{}, nil)
		jsonBytes, _ := json.Marshal(res)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "density://exports",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: density://kinds
	s.mcpServer.AddResource(mcp.NewResource("density://kinds", "Node Kinds By Category",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(KindCatalog())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "density://kinds",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// KindCatalog groups every node kind by category.
func KindCatalog() map[ast.Category][]ast.Kind {
	out := make(map[ast.Category][]ast.Kind)
	for _, k := range ast.Kinds() {
		c := ast.CategoryOf(k)
		out[c] = append(out[c], k)
	}
	return out
}

func parseInputs(raw string) (*domain.InputValues, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var v domain.InputValues
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}
	return &v, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
