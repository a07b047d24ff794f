package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
)

// Export is a named density published by a pack document.
type Export struct {
	Name string
	// Node is the Exported node itself, so SingleInstance travels with it.
	Node *ast.Exported
	// Source identifies the document that declared it.
	Source string
}

// Registry holds the pack-wide exports and assets.
// It is safe for concurrent use; entries are treated as immutable once registered.
type Registry struct {
	mu        sync.RWMutex
	exports   map[string]Export
	curves    map[string]*ast.Curve
	positions map[string]*ast.Positions
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		exports:   make(map[string]Export),
		curves:    make(map[string]*ast.Curve),
		positions: make(map[string]*ast.Positions),
	}
}

// RegisterExport publishes node under name.
// A second registration of the same name fails with a DuplicateExport error
// naming both sources.
func (r *Registry) RegisterExport(name string, node *ast.Exported, source string) error {
	if name == "" {
		return &domain.ResolveError{Kind: domain.ResolveMalformed, Detail: fmt.Sprintf("unnamed export in %s", source)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.exports[name]; ok {
		return &domain.ResolveError{
			Kind:   domain.ResolveDuplicateExport,
			Names:  []string{name},
			Detail: fmt.Sprintf("declared in %s and %s", prev.Source, source),
		}
	}
	r.exports[name] = Export{Name: name, Node: node, Source: source}
	return nil
}

// RegisterCurve adds a curve asset. Later registrations replace earlier ones.
func (r *Registry) RegisterCurve(name string, c *ast.Curve) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.curves[name] = c
}

// RegisterPositions adds a positions asset. Later registrations replace earlier ones.
func (r *Registry) RegisterPositions(name string, p *ast.Positions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions[name] = p
}

// Export looks up an export by name.
func (r *Registry) Export(name string) (Export, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exports[name]
	return e, ok
}

// Curve looks up a curve asset by name.
func (r *Registry) Curve(name string) (*ast.Curve, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.curves[name]
	return c, ok
}

// Positions looks up a positions asset by name.
func (r *Registry) Positions(name string) (*ast.Positions, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.positions[name]
	return p, ok
}

// ExportNames returns the registered export names, sorted.
func (r *Registry) ExportNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.exports)
}

// CurveNames returns the registered curve names, sorted.
func (r *Registry) CurveNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.curves)
}

// PositionsNames returns the registered positions names, sorted.
func (r *Registry) PositionsNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.positions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
