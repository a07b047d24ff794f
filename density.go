package density

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/terranova/density/internal/compiler"
	"github.com/terranova/density/internal/resolver"
	"github.com/terranova/density/internal/runtime"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/registry"
)

// Program is a resolved document ready for evaluation. It is immutable and
// may be shared by any number of sessions and goroutines.
type Program = runtime.Program

// Session is one cache scope over a program. It is not safe for concurrent use.
type Session = runtime.Session

// Engine is the high-level entry point for the density library.
// It wraps the parser, the resolver and the runtime and provides a simplified
// API for consumers.
type Engine struct {
	parser   *compiler.Parser
	registry atomic.Pointer[registry.Registry]
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxDepth int
	workers  int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxDepth bounds both document nesting and evaluation recursion.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		e.maxDepth = n
	}
}

// WithWorkers sets the number of columns evaluated in parallel by EvaluateGrid.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithRegistry shares a pack registry between engines.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry.Store(reg)
	}
}

// New initializes a new density Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so library code never logs to a nil handler.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.registry.Load() == nil {
		eng.registry.Store(registry.NewRegistry())
	}
	if eng.maxDepth <= 0 {
		eng.maxDepth = runtime.DefaultMaxDepth
	}
	eng.parser = compiler.NewParser(compiler.WithMaxDepth(eng.maxDepth))
	return eng
}

// Registry returns the pack registry documents are resolved against.
func (e *Engine) Registry() *registry.Registry {
	return e.registry.Load()
}

// Parse decodes a document: a bare node or a WorldStructure/Biome envelope.
func (e *Engine) Parse(data []byte) (ast.Node, error) {
	return e.parser.ParseDocument(data)
}

// Compile parses and resolves a document.
func (e *Engine) Compile(ctx context.Context, data []byte) (*Program, error) {
	start := time.Now()
	root, err := e.Parse(data)
	if err != nil {
		e.emitCompile(ctx, nil, start, err)
		return nil, err
	}
	return e.compile(ctx, root, start)
}

// CompileNode resolves an already built tree. The tree is not modified.
func (e *Engine) CompileNode(ctx context.Context, root ast.Node) (*Program, error) {
	return e.compile(ctx, root, time.Now())
}

func (e *Engine) compile(ctx context.Context, root ast.Node, start time.Time) (*Program, error) {
	prog, err := resolver.Resolve(root,
		resolver.WithRegistry(e.registry.Load()),
		resolver.WithLogger(e.logger),
	)
	e.emitCompile(ctx, prog, start, err)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func (e *Engine) emitCompile(ctx context.Context, prog *Program, start time.Time, err error) {
	evt := &domain.CompileEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCompile},
		Duration:  time.Since(start),
		Err:       err,
	}
	if prog != nil {
		evt.ProgramID = prog.ID()
		evt.Nodes = prog.NodeCount()
		evt.Exports = len(prog.ExportNames())
	}
	if err != nil {
		e.logger.Debug("compile failed", "err", err)
	} else {
		e.logger.Debug("compiled program", "program", evt.ProgramID, "nodes", evt.Nodes, "exports", evt.Exports)
	}
	if e.hooks.OnCompile != nil {
		e.hooks.OnCompile(ctx, evt)
	}
}

// Validate reports the first problem that keeps a document from compiling.
func (e *Engine) Validate(data []byte) error {
	root, err := e.Parse(data)
	if err != nil {
		return err
	}
	_, err = resolver.Resolve(root, resolver.WithRegistry(e.registry.Load()), resolver.WithLogger(e.logger))
	return err
}

// NewSession opens a cache scope over prog. Inputs may be nil when the
// program reads no world context.
func (e *Engine) NewSession(prog *Program, inputs *domain.ContextInputs, opts ...runtime.SessionOption) *Session {
	opts = append([]runtime.SessionOption{runtime.WithMaxDepth(e.maxDepth)}, opts...)
	return prog.NewSession(inputs, opts...)
}

// Evaluate samples prog at one point in a fresh session.
func (e *Engine) Evaluate(ctx context.Context, prog *Program, at domain.Vec3, inputs *domain.ContextInputs) (float64, error) {
	start := time.Now()
	s := e.NewSession(prog, inputs)
	v, err := s.Evaluate(at)

	if e.hooks.OnEvaluate != nil {
		e.hooks.OnEvaluate(ctx, &domain.EvaluateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEvaluate, ProgramID: prog.ID()},
			Point:     at,
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	e.endSession(ctx, prog, s.Stats())
	return v, err
}

// EvaluateGrid samples prog over every point of dom. Failed points are NaN
// and listed in the grid's faults; only an invalid domain or a cancelled
// context fail the call.
func (e *Engine) EvaluateGrid(ctx context.Context, prog *Program, dom domain.Domain, inputs *domain.ContextInputs) (*domain.Grid, error) {
	start := time.Now()
	grid, err := runtime.EvaluateGrid(ctx, prog, dom, inputs,
		runtime.WithWorkers(e.workers),
		runtime.WithSessionOptions(runtime.WithMaxDepth(e.maxDepth)),
		runtime.WithColumnStats(func(stats domain.SessionStats) {
			e.endSession(ctx, prog, stats)
		}),
	)
	if err != nil {
		e.logger.Warn("grid evaluation aborted", "program", prog.ID(), "err", err)
		return nil, err
	}

	evt := &domain.GridEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventGrid, ProgramID: prog.ID()},
		Points:    len(grid.Values),
		Faults:    len(grid.Faults),
		Duration:  time.Since(start),
	}
	if evt.Faults > 0 {
		e.logger.Warn("grid has faulted points", "program", prog.ID(), "faults", evt.Faults, "first", grid.Faults[0].Error)
	}
	e.logger.Info("grid evaluated", "program", prog.ID(), "points", evt.Points, "duration", evt.Duration)
	if e.hooks.OnGrid != nil {
		e.hooks.OnGrid(ctx, evt)
	}
	return grid, nil
}

// endSession reports session counters. Grid columns call it concurrently.
func (e *Engine) endSession(ctx context.Context, prog *Program, stats domain.SessionStats) {
	if e.hooks.OnSessionEnd == nil {
		return
	}
	e.hooks.OnSessionEnd(ctx, &domain.SessionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSessionEnd, ProgramID: prog.ID()},
		Stats:     stats,
	})
}

// GridKey derives a stable cache key for the grid of a document over a domain.
// The domain is hashed by the IEEE bits of its coordinates, so non-finite
// origins or steps still give distinct keys.
func GridKey(doc []byte, dom domain.Domain) string {
	d := xxhash.New()
	_, _ = d.Write(doc)
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	write(0)
	for _, v := range []domain.Vec3{dom.Origin, dom.Step} {
		write(math.Float64bits(v.X))
		write(math.Float64bits(v.Y))
		write(math.Float64bits(v.Z))
	}
	for _, n := range dom.Size {
		write(uint64(int64(n)))
	}
	return "grid:" + strconv.FormatUint(d.Sum64(), 16)
}
