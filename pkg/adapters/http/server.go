package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/terranova/density"
	"github.com/terranova/density/internal/presentation/graph"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/observability"
	"github.com/terranova/density/pkg/ports"
	"github.com/terranova/density/pkg/session"
)

const (
	// DefaultMaxPoints bounds the lattice of one preview request.
	DefaultMaxPoints = 64 * 64 * 64
	maxBodyBytes     = 8 << 20
)

// Server exposes a density engine as a JSON API.
type Server struct {
	Engine  *density.Engine
	Streams *StreamManager

	source    ports.AssetSource
	sessions  *session.Manager
	metrics   *observability.Metrics
	logger    *slog.Logger
	maxPoints int
}

// Option configures the Server.
type Option func(*Server)

// WithSessions caches preview grids through the given manager.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) { s.sessions = m }
}

// WithMetrics serves m on /metrics. The caller wires m.Hooks into the engine.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithSource names the asset pack the engine was loaded from. Watch reloads it.
func WithSource(src ports.AssetSource) Option {
	return func(s *Server) { s.source = src }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMaxPoints overrides DefaultMaxPoints.
func WithMaxPoints(n int) Option {
	return func(s *Server) { s.maxPoints = n }
}

// NewServer creates a Server over engine.
func NewServer(engine *density.Engine, opts ...Option) *Server {
	s := &Server{
		Engine:    engine,
		logger:    slog.Default(),
		maxPoints: DefaultMaxPoints,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine *density.Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", s.Evaluate)
		r.Post("/preview", s.Preview)
		r.Post("/validate", s.Validate)
		r.Post("/graph", s.Graph)
		r.Get("/exports", s.GetExports)
		r.Get("/events", s.SubscribeEvents)

		// Swagger UI
		r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/yaml")
			w.Write(rawSpec)
		})
		r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
			doc, err := GetSwagger()
			if err != nil {
				s.fail(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
		})
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Density API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/v1/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// -- Wire types --

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type EvaluateRequest struct {
	Document json.RawMessage     `json:"document"`
	Points   []domain.Vec3       `json:"points"`
	Inputs   *domain.InputValues `json:"inputs,omitempty"`
}

type EvaluateResponse struct {
	Values domain.Samples      `json:"values"`
	Errors []domain.PointFault `json:"errors,omitempty"`
}

type PreviewRequest struct {
	Document json.RawMessage     `json:"document"`
	Domain   domain.Domain       `json:"domain"`
	Inputs   *domain.InputValues `json:"inputs,omitempty"`
}

type DocumentRequest struct {
	Document json.RawMessage `json:"document"`
}

type ValidateResponse struct {
	Valid bool           `json:"valid"`
	Error *ErrorResponse `json:"error,omitempty"`
}

type GraphRequest struct {
	Document json.RawMessage     `json:"document"`
	Point    *domain.Vec3        `json:"point,omitempty"`
	Inputs   *domain.InputValues `json:"inputs,omitempty"`
}

type GraphResponse struct {
	Mermaid string `json:"mermaid"`
	// Error is the evaluation error at Point, if any. The failing node is highlighted.
	Error string `json:"error,omitempty"`
}

type ExportsResponse struct {
	Exports   []string `json:"exports"`
	Curves    []string `json:"curves"`
	Positions []string `json:"positions"`
}

// -- Handlers --

// Evaluate handles the POST /v1/evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if !s.decode(w, r, "EvaluateRequest", &body) {
		return
	}

	prog, ok := s.compile(w, r, body.Document)
	if !ok {
		return
	}

	inputs := body.Inputs.Context()
	resp := EvaluateResponse{Values: make(domain.Samples, len(body.Points))}
	for i, p := range body.Points {
		v, err := s.Engine.Evaluate(r.Context(), prog, p, inputs)
		if err != nil {
			resp.Values[i] = math.NaN()
			resp.Errors = append(resp.Errors, domain.PointFault{Index: i, Error: err.Error()})
			continue
		}
		resp.Values[i] = v
	}
	writeJSON(w, http.StatusOK, resp)
}

// Preview handles the POST /v1/preview request.
func (s *Server) Preview(w http.ResponseWriter, r *http.Request) {
	var body PreviewRequest
	if !s.decode(w, r, "PreviewRequest", &body) {
		return
	}
	if err := body.Domain.Validate(); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if n := body.Domain.Len(); n > s.maxPoints {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("domain has %d points, limit is %d", n, s.maxPoints))
		return
	}

	prog, ok := s.compile(w, r, body.Document)
	if !ok {
		return
	}

	compute := func(ctx context.Context) (*domain.Grid, error) {
		return s.Engine.EvaluateGrid(ctx, prog, body.Domain, body.Inputs.Context())
	}

	var (
		grid  *domain.Grid
		err   error
		cache = "bypass"
	)
	if s.sessions == nil {
		grid, err = compute(r.Context())
	} else {
		var cached bool
		grid, cached, err = s.sessions.LoadOrCompute(r.Context(), previewKey(body), compute)
		cache = "miss"
		if cached {
			cache = "hit"
		}
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		s.logger.Error("Preview failed", "err", err)
		return
	}

	w.Header().Set("X-Cache", cache)
	writeJSON(w, http.StatusOK, grid)
}

// previewKey covers everything a grid depends on besides the pack, which
// invalidates the whole cache when it changes.
func previewKey(body PreviewRequest) string {
	doc := append([]byte{}, body.Document...)
	if body.Inputs != nil {
		inputs, _ := json.Marshal(body.Inputs)
		doc = append(append(doc, 0), inputs...)
	}
	return density.GridKey(doc, body.Domain)
}

// Validate handles the POST /v1/validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body DocumentRequest
	if !s.decode(w, r, "DocumentRequest", &body) {
		return
	}

	resp := ValidateResponse{Valid: true}
	if err := s.Engine.Validate(body.Document); err != nil {
		resp = ValidateResponse{Error: errorResponse(err)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Graph handles the POST /v1/graph request.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	var body GraphRequest
	if !s.decode(w, r, "GraphRequest", &body) {
		return
	}

	root, err := s.Engine.Parse(body.Document)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}

	var (
		overlay *graph.Overlay
		resp    GraphResponse
	)
	if body.Point != nil {
		prog, ok := s.compile(w, r, body.Document)
		if !ok {
			return
		}
		if _, err := s.Engine.Evaluate(r.Context(), prog, *body.Point, body.Inputs.Context()); err != nil {
			resp.Error = err.Error()
			var evalErr *domain.EvalError
			if errors.As(err, &evalErr) {
				// Node labels read "Kind#id"
				kind, _, _ := strings.Cut(evalErr.Node, "#")
				overlay = &graph.Overlay{Faulted: []ast.Kind{ast.Kind(kind)}}
			}
		}
	}

	resp.Mermaid = graph.GenerateMermaid(root, overlay)
	writeJSON(w, http.StatusOK, resp)
}

// GetExports handles the GET /v1/exports request.
func (s *Server) GetExports(w http.ResponseWriter, r *http.Request) {
	reg := s.Engine.Registry()
	writeJSON(w, http.StatusOK, ExportsResponse{
		Exports:   nonNil(reg.ExportNames()),
		Curves:    nonNil(reg.CurveNames()),
		Positions: nonNil(reg.PositionsNames()),
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SubscribeEvents handles the GET /v1/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// PackEvent is broadcast to SSE subscribers after a reload attempt.
type PackEvent struct {
	Type   string              `json:"type"`
	Asset  string              `json:"asset"`
	Report *density.PackReport `json:"report,omitempty"`
	Error  string              `json:"error,omitempty"`
	Purged int                 `json:"purged,omitempty"`
}

// Watch reloads the pack each time the source reports a change, until ctx is
// done. Cached previews are purged after every successful reload.
func (s *Server) Watch(ctx context.Context) error {
	watchable, ok := s.source.(ports.Watchable)
	if !ok {
		return errors.New("asset source does not support watching")
	}
	events, err := watchable.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-events:
			if !ok {
				return nil
			}
			s.Reload(ctx, id)
		}
	}
}

// Reload swaps in a fresh copy of the pack and notifies subscribers.
// changed names the asset that triggered it, for the notification only.
func (s *Server) Reload(ctx context.Context, changed string) {
	evt := PackEvent{Type: "reload", Asset: changed}

	report, err := s.Engine.ReloadPack(ctx, s.source)
	if err != nil {
		s.logger.Error("Pack reload failed", "asset", changed, "err", err)
		evt = PackEvent{Type: "reload_failed", Asset: changed, Error: err.Error()}
	} else {
		evt.Report = report
		if s.sessions != nil {
			n, err := s.sessions.Purge(ctx)
			if err != nil {
				s.logger.Warn("Failed to purge preview cache", "err", err)
			}
			evt.Purged = n
		}
	}

	if bytes, err := json.Marshal(evt); err == nil {
		s.Streams.Broadcast(string(bytes))
	}
}

// -- Helpers --

// decode reads the body, validates it against the named schema of the API
// document, and unmarshals it into dst. It writes the error response itself.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema string, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, http.StatusRequestEntityTooLarge, err)
		return false
	}
	if err := validateBody(schema, body); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		s.logger.Warn("Invalid request body", "schema", schema, "err", err)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request, doc []byte) (*density.Program, bool) {
	prog, err := s.Engine.Compile(r.Context(), doc)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	return prog, true
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse(err))
}

// errorResponse exposes the kind code of typed engine errors.
func errorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{Error: err.Error()}
	var (
		schemaErr  *domain.SchemaError
		resolveErr *domain.ResolveError
		evalErr    *domain.EvalError
	)
	switch {
	case errors.As(err, &schemaErr):
		resp.Kind = string(schemaErr.Kind)
	case errors.As(err, &resolveErr):
		resp.Kind = string(resolveErr.Kind)
	case errors.As(err, &evalErr):
		resp.Kind = string(evalErr.Kind)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
