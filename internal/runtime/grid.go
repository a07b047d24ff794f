package runtime

import (
	"context"
	"math"
	goruntime "runtime"
	"sort"
	"sync"

	"github.com/terranova/density/pkg/domain"
)

// GridOption configures EvaluateGrid.
type GridOption func(*gridConfig)

type gridConfig struct {
	workers  int
	session  []SessionOption
	onColumn func(stats domain.SessionStats)
}

// WithWorkers sets the number of columns evaluated in parallel.
// Values below one use GOMAXPROCS.
func WithWorkers(n int) GridOption {
	return func(c *gridConfig) {
		c.workers = n
	}
}

// WithSessionOptions applies opts to every column session.
func WithSessionOptions(opts ...SessionOption) GridOption {
	return func(c *gridConfig) {
		c.session = append(c.session, opts...)
	}
}

// WithColumnStats receives the counters of each finished column. It may be
// called from several goroutines at once.
func WithColumnStats(fn func(domain.SessionStats)) GridOption {
	return func(c *gridConfig) {
		c.onColumn = fn
	}
}

type column struct {
	ix, iz int
}

// EvaluateGrid samples prog over every point of dom. Columns of constant
// (x, z) are fanned out to a worker pool, each with its own session. A point
// whose evaluation fails is stored as NaN and reported in Faults; the grid as
// a whole only fails on an invalid domain or a cancelled context.
func EvaluateGrid(ctx context.Context, prog *Program, dom domain.Domain, inputs *domain.ContextInputs, opts ...GridOption) (*domain.Grid, error) {
	if err := dom.Validate(); err != nil {
		return nil, err
	}

	cfg := gridConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = goruntime.GOMAXPROCS(0)
	}

	grid := &domain.Grid{
		Domain: dom,
		Values: make(domain.Samples, dom.Len()),
	}

	jobs := make(chan column)
	go func() {
		defer close(jobs)
		for iz := 0; iz < dom.Size[2]; iz++ {
			for ix := 0; ix < dom.Size[0]; ix++ {
				select {
				case jobs <- column{ix: ix, iz: iz}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		faults []domain.PointFault
	)

	worker := func() {
		defer wg.Done()
		for job := range jobs {
			if ctx.Err() != nil {
				continue
			}
			s := prog.NewSession(inputs, cfg.session...)
			var local []domain.PointFault
			for iy := 0; iy < dom.Size[1]; iy++ {
				idx := dom.Index(job.ix, iy, job.iz)
				v, err := s.Evaluate(dom.Point(job.ix, iy, job.iz))
				if err != nil {
					v = math.NaN()
					local = append(local, domain.PointFault{Index: idx, Error: err.Error()})
				}
				grid.Values[idx] = v
			}
			if cfg.onColumn != nil {
				cfg.onColumn(s.Stats())
			}
			if len(local) > 0 {
				mu.Lock()
				faults = append(faults, local...)
				mu.Unlock()
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(faults, func(i, j int) bool { return faults[i].Index < faults[j].Index })
	grid.Faults = faults
	return grid, nil
}
