package runtime

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/terranova/density/pkg/domain"
)

// DefaultMaxDepth bounds evaluator recursion.
const DefaultMaxDepth = 512

// EvalContext is the mutable state of one tree walk: the coordinate seen by
// the current node, the override stacks, the anchor and the switch states.
// Every setter returns a restore function that must run when the scoped
// sub-tree has been evaluated, on every exit path.
type EvalContext struct {
	point     domain.Vec3
	top       domain.Vec3
	anchor    domain.Vec3
	anchored  bool
	overrides [3][]float64
	switches  map[string]string

	depth    int
	maxDepth int

	fp      uint64
	fpValid bool
}

func newContext(at domain.Vec3, maxDepth int) EvalContext {
	return EvalContext{point: at, top: at, maxDepth: maxDepth}
}

// Point is the coordinate seen by the current node.
func (c *EvalContext) Point() domain.Vec3 { return c.point }

// Top is the coordinate the walk started from.
func (c *EvalContext) Top() domain.Vec3 { return c.top }

// Anchor returns the local origin and whether one is set.
func (c *EvalContext) Anchor() (domain.Vec3, bool) { return c.anchor, c.anchored }

// Local is the coordinate relative to the anchor, or the world coordinate without one.
func (c *EvalContext) Local() domain.Vec3 {
	if !c.anchored {
		return c.point
	}
	return c.point.Sub(c.anchor)
}

// Switch returns the current state of a switch channel.
func (c *EvalContext) Switch(name string) string { return c.switches[name] }

// OverrideDepth reports how many overrides are active on axis.
func (c *EvalContext) OverrideDepth(axis domain.Axis) int { return len(c.overrides[axis]) }

// Move replaces the coordinate for a sub-tree.
func (c *EvalContext) Move(p domain.Vec3) (restore func()) {
	prev := c.point
	c.point = p
	return func() { c.point = prev }
}

// PushOverride replaces one axis of the coordinate for a sub-tree.
func (c *EvalContext) PushOverride(axis domain.Axis, v float64) (restore func()) {
	c.overrides[axis] = append(c.overrides[axis], c.point.Get(axis))
	c.point = c.point.With(axis, v)
	c.fpValid = false
	return func() {
		stack := c.overrides[axis]
		c.point = c.point.With(axis, stack[len(stack)-1])
		c.overrides[axis] = stack[:len(stack)-1]
		c.fpValid = false
	}
}

// SetAnchor makes p the local origin for a sub-tree.
func (c *EvalContext) SetAnchor(p domain.Vec3) (restore func()) {
	return c.swapAnchor(p, true)
}

// ClearAnchor resets the local origin to the world origin for a sub-tree.
func (c *EvalContext) ClearAnchor() (restore func()) {
	return c.swapAnchor(domain.Vec3{}, false)
}

func (c *EvalContext) swapAnchor(p domain.Vec3, set bool) func() {
	prev, prevSet := c.anchor, c.anchored
	c.anchor, c.anchored = p, set
	c.fpValid = false
	return func() {
		c.anchor, c.anchored = prev, prevSet
		c.fpValid = false
	}
}

// SetSwitch sets a switch channel for a sub-tree.
func (c *EvalContext) SetSwitch(name, state string) (restore func()) {
	prev, had := c.switches[name]
	if c.switches == nil {
		c.switches = make(map[string]string)
	}
	c.switches[name] = state
	c.fpValid = false
	return func() {
		if had {
			c.switches[name] = prev
		} else {
			delete(c.switches, name)
		}
		c.fpValid = false
	}
}

// Fingerprint hashes the scoped state that can change what a sub-tree
// evaluates to at a fixed coordinate. Memo keys include it.
func (c *EvalContext) Fingerprint() uint64 {
	if c.fpValid {
		return c.fp
	}

	d := xxhash.New()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	if c.anchored {
		write(1)
		write(math.Float64bits(c.anchor.X))
		write(math.Float64bits(c.anchor.Y))
		write(math.Float64bits(c.anchor.Z))
	} else {
		write(0)
	}
	for axis := range c.overrides {
		write(uint64(len(c.overrides[axis])))
	}

	if len(c.switches) > 0 {
		names := make([]string, 0, len(c.switches))
		for name := range c.switches {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = d.WriteString(name)
			_, _ = d.Write([]byte{0})
			_, _ = d.WriteString(c.switches[name])
			_, _ = d.Write([]byte{0})
		}
	}

	c.fp = d.Sum64()
	c.fpValid = true
	return c.fp
}
