package runtime

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

var sessionSerial atomic.Uint64

// Session is one cache scope over a program: it owns an evaluation context and
// the memo of every cache node. A session is not safe for concurrent use; run
// one per goroutine.
type Session struct {
	prog     *Program
	inputs   *domain.ContextInputs
	scope    string
	maxDepth int

	ctx    EvalContext
	memo   *memo
	single map[singleKey]float64
	carry  []carryFrame
	stats  domain.SessionStats
}

// carryFrame is the running value handed to one pipeline step, with the
// coordinate and scope it was computed under.
type carryFrame struct {
	pipe  *ast.Pipeline
	step  int
	value float64
	at    domain.Vec3
	fp    uint64
}

type singleKey struct {
	node    int
	x, y, z uint64
}

// SessionOption configures a session.
type SessionOption func(*Session)

// WithScope names the cache scope, such as the column or chunk being generated.
func WithScope(scope string) SessionOption {
	return func(s *Session) {
		s.scope = scope
	}
}

// WithMaxDepth overrides the recursion limit.
func WithMaxDepth(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// NewSession opens a cache scope bound to p. Inputs may be nil when the
// program reads no world context.
func (p *Program) NewSession(inputs *domain.ContextInputs, opts ...SessionOption) *Session {
	if inputs == nil {
		inputs = &domain.ContextInputs{}
	}
	s := &Session{
		prog:     p,
		inputs:   inputs,
		scope:    "session-" + strconv.FormatUint(sessionSerial.Add(1), 10),
		maxDepth: DefaultMaxDepth,
		memo:     newMemo(),
		single:   make(map[singleKey]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Program returns the program the session is bound to.
func (s *Session) Program() *Program { return s.prog }

// Scope returns the cache scope name.
func (s *Session) Scope() string { return s.scope }

// Stats reports memo and evaluation counters.
func (s *Session) Stats() domain.SessionStats { return s.stats }

// Evaluate samples the session's program at a point.
func (s *Session) Evaluate(at domain.Vec3) (float64, error) {
	return s.prog.Evaluate(s, at)
}

// Evaluate samples p at a point using the caches of s. The session must have
// been opened on p: memo entries are keyed by node identities of one program.
func (p *Program) Evaluate(s *Session, at domain.Vec3) (float64, error) {
	if s.prog != p {
		return math.NaN(), &domain.EvalError{
			Kind:   domain.EvalContextMismatch,
			Detail: fmt.Sprintf("session %s belongs to program %d, not %d", s.scope, s.prog.id, p.id),
		}
	}
	s.ctx = newContext(at, s.maxDepth)
	s.carry = s.carry[:0]
	v, err := s.eval(p.root)
	if err != nil {
		return math.NaN(), err
	}
	return v, nil
}

func (s *Session) memoKey(c *Compiled, p domain.Vec3, withY bool) memoKey {
	k := memoKey{
		prog: s.prog.id,
		node: c.ID,
		x:    math.Float64bits(p.X),
		z:    math.Float64bits(p.Z),
		fp:   s.ctx.Fingerprint(),
	}
	if withY {
		k.y = math.Float64bits(p.Y)
	}
	if c.TopDependent {
		top := s.ctx.top
		k.tx = math.Float64bits(top.X)
		k.ty = math.Float64bits(top.Y)
		k.tz = math.Float64bits(top.Z)
	}
	return k
}

// cached evaluates in through the memo of node c.
func (s *Session) cached(c *Compiled, capacity int, k memoKey, in ast.Input) (float64, error) {
	st := s.memo.store(c.ID, capacity)
	if v, ok := st.get(k); ok {
		s.stats.Hits++
		return v, nil
	}
	s.stats.Misses++
	v, err := s.input(in)
	if err != nil {
		return 0, err
	}
	st.put(k, v)
	return v, nil
}

// shared evaluates a single-instance export once per sample point with a
// clean context at the top-level coordinate.
func (s *Session) shared(c *Compiled, body ast.Input) (float64, error) {
	top := s.ctx.top
	k := singleKey{
		node: c.ID,
		x:    math.Float64bits(top.X),
		y:    math.Float64bits(top.Y),
		z:    math.Float64bits(top.Z),
	}
	if v, ok := s.single[k]; ok {
		s.stats.Hits++
		return v, nil
	}
	s.stats.Misses++

	saved := s.ctx
	s.ctx = newContext(top, s.maxDepth)
	s.ctx.depth = saved.depth
	v, err := s.input(body)
	s.ctx = saved
	if err != nil {
		return 0, err
	}
	s.single[k] = v
	return v, nil
}
