package observability

import (
	"context"
	"log/slog"

	"github.com/terranova/density/pkg/domain"
)

// Chain combines several hook sets into one. Callbacks run in argument order;
// nil callbacks are skipped.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		out.OnCompile = chain(out.OnCompile, h.OnCompile)
		out.OnEvaluate = chain(out.OnEvaluate, h.OnEvaluate)
		out.OnGrid = chain(out.OnGrid, h.OnGrid)
		out.OnSessionEnd = chain(out.OnSessionEnd, h.OnSessionEnd)
	}
	return out
}

func chain[E any](first, next func(context.Context, E)) func(context.Context, E) {
	switch {
	case first == nil:
		return next
	case next == nil:
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		next(ctx, e)
	}
}

// LogHooks writes one structured record per compile and grid pass.
// Point evaluations and session ends are logged at Debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "compile_failed", "err", e.Err, "duration", e.Duration)
				return
			}
			logger.InfoContext(ctx, "compile",
				"program_id", e.ProgramID,
				"nodes", e.Nodes,
				"exports", e.Exports,
				"duration", e.Duration,
			)
		},
		OnEvaluate: func(ctx context.Context, e *domain.EvaluateEvent) {
			logger.DebugContext(ctx, "evaluate", "program_id", e.ProgramID, "point", e.Point, "err", e.Err)
		},
		OnGrid: func(ctx context.Context, e *domain.GridEvent) {
			logger.InfoContext(ctx, "grid",
				"program_id", e.ProgramID,
				"points", e.Points,
				"faults", e.Faults,
				"duration", e.Duration,
			)
		},
		OnSessionEnd: func(ctx context.Context, e *domain.SessionEvent) {
			logger.DebugContext(ctx, "session_end",
				"program_id", e.ProgramID,
				"hits", e.Stats.Hits,
				"misses", e.Stats.Misses,
			)
		},
	}
}
