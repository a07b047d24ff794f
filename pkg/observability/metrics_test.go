package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/terranova/density/pkg/domain"
)

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	h := m.Hooks()
	ctx := context.Background()

	h.OnCompile(ctx, &domain.CompileEvent{Duration: time.Millisecond})
	h.OnCompile(ctx, &domain.CompileEvent{Err: errors.New("bad")})
	h.OnEvaluate(ctx, &domain.EvaluateEvent{})
	h.OnGrid(ctx, &domain.GridEvent{Points: 64, Faults: 2})
	h.OnSessionEnd(ctx, &domain.SessionEvent{Stats: domain.SessionStats{Hits: 5, Misses: 3}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.compiles.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.compiles.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("ok")))
	assert.Equal(t, 64.0, testutil.ToFloat64(m.gridPoints))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.gridFaults))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.memo.WithLabelValues("hit")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.memo.WithLabelValues("miss")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.Hooks().OnGrid(context.Background(), &domain.GridEvent{Points: 8})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "density_grid_points_total 8")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestChain(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnGrid: func(context.Context, *domain.GridEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnGrid:    func(context.Context, *domain.GridEvent) { calls = append(calls, "b") },
		OnCompile: func(context.Context, *domain.CompileEvent) { calls = append(calls, "compile") },
	}

	h := Chain(a, domain.LifecycleHooks{}, b)
	h.OnGrid(context.Background(), &domain.GridEvent{})
	h.OnCompile(context.Background(), &domain.CompileEvent{})

	assert.Equal(t, []string{"a", "b", "compile"}, calls)
	assert.Nil(t, h.OnEvaluate)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LogHooks(slog.New(slog.NewJSONHandler(&buf, nil)))

	h.OnCompile(context.Background(), &domain.CompileEvent{Nodes: 3})
	h.OnCompile(context.Background(), &domain.CompileEvent{Err: errors.New("nope")})
	h.OnEvaluate(context.Background(), &domain.EvaluateEvent{})

	out := buf.String()
	assert.Contains(t, out, `"msg":"compile"`)
	assert.Contains(t, out, `"nodes":3`)
	assert.Contains(t, out, `"msg":"compile_failed"`)
	assert.NotContains(t, out, `"msg":"evaluate"`, "debug records are filtered at the default level")
}
