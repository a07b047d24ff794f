package resolver

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/terranova/density/internal/runtime"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/registry"
)

// Option configures resolution.
type Option func(*resolver)

// WithRegistry makes the pack-wide exports and assets of reg visible to the document.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *resolver) {
		r.reg = reg
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

type resolver struct {
	reg    *registry.Registry
	logger *slog.Logger

	// exports holds every export linked into the program: the document's own
	// and those pulled from the registry.
	exports map[string]*ast.Exported
	// trees are the roots walked for identities: the document and pulled bodies.
	trees   []ast.Node
	links   map[*ast.Imported]*ast.Exported
	carries map[*ast.Carried]*ast.Pipeline
}

// Resolve validates a parsed document and compiles it into a program.
// The input tree is never modified.
func Resolve(root ast.Node, opts ...Option) (*runtime.Program, error) {
	r := &resolver{
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		exports: make(map[string]*ast.Exported),
		links:   make(map[*ast.Imported]*ast.Exported),
		carries: make(map[*ast.Carried]*ast.Pipeline),
	}
	for _, opt := range opts {
		opt(r)
	}

	if root == nil {
		return nil, &domain.ResolveError{Kind: domain.ResolveMalformed, Detail: "empty document"}
	}

	top := ast.Clone(root)
	r.thread(top)

	if err := r.register(top); err != nil {
		return nil, err
	}
	if err := r.link(top); err != nil {
		return nil, err
	}
	if err := r.checkCycles(); err != nil {
		return nil, err
	}

	nodes, err := r.compile()
	if err != nil {
		return nil, err
	}

	prog := runtime.NewProgram(top, nodes, r.exports)
	r.logger.Debug("resolved program",
		"program", prog.ID(),
		"nodes", len(nodes),
		"exports", len(r.exports),
		"root", top.Kind(),
	)
	return prog, nil
}

// register records the named exports of the document. Unnamed exports are
// plain pass-throughs.
func (r *resolver) register(root ast.Node) error {
	var err error
	ast.Walk(root, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		e, ok := n.(*ast.Exported)
		if !ok || ast.Or(e.Name, "") == "" {
			return true
		}
		name := *e.Name
		if _, dup := r.exports[name]; dup {
			err = &domain.ResolveError{
				Kind:   domain.ResolveDuplicateExport,
				Names:  []string{name},
				Detail: "declared twice in the document",
			}
			return false
		}
		r.exports[name] = e
		return true
	})
	r.trees = append(r.trees, root)
	return err
}

// link resolves every import reachable from root, pulling pack exports into
// the program on demand. All unknown names are reported together.
func (r *resolver) link(root ast.Node) error {
	unresolved := make(map[string]bool)
	queue := []ast.Node{root}

	for len(queue) > 0 {
		tree := queue[0]
		queue = queue[1:]

		ast.Walk(tree, func(n ast.Node) bool {
			imp, ok := n.(*ast.Imported)
			if !ok {
				return true
			}
			name := ast.Or(imp.Name, "")
			target, ok := r.exports[name]
			if !ok && name != "" {
				if pulled := r.pull(name); pulled != nil {
					target = pulled
					queue = append(queue, pulled)
				}
			}
			if target == nil {
				unresolved[name] = true
				return true
			}
			r.links[imp] = target
			return true
		})
	}

	if len(unresolved) > 0 {
		names := make([]string, 0, len(unresolved))
		for name := range unresolved {
			names = append(names, name)
		}
		sort.Strings(names)
		return &domain.ResolveError{
			Kind:   domain.ResolveUnresolvedImport,
			Names:  names,
			Detail: "no export with this name",
		}
	}
	return nil
}

// pull copies a pack export into the program. Exports nested in its body
// become visible too unless the document already declares the name.
func (r *resolver) pull(name string) *ast.Exported {
	if r.reg == nil {
		return nil
	}
	entry, ok := r.reg.Export(name)
	if !ok || entry.Node == nil {
		return nil
	}

	e := ast.Clone(entry.Node).(*ast.Exported)
	r.thread(e)

	ast.Walk(e, func(n ast.Node) bool {
		if nested, ok := n.(*ast.Exported); ok {
			if nn := ast.Or(nested.Name, ""); nn != "" {
				if _, exists := r.exports[nn]; !exists {
					r.exports[nn] = nested
				}
			}
		}
		return true
	})
	r.exports[name] = e
	r.trees = append(r.trees, e)

	r.logger.Debug("pulled pack export", "export", name, "source", entry.Source)
	return e
}

// checkCycles walks the export dependency graph depth first and reports the
// first cycle found as a path of export names.
func (r *resolver) checkCycles() error {
	deps := make(map[string][]string, len(r.exports))
	for name, e := range r.exports {
		ast.Walk(e, func(n ast.Node) bool {
			if imp, ok := n.(*ast.Imported); ok {
				deps[name] = append(deps[name], ast.Or(imp.Name, ""))
			}
			return true
		})
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(deps))
	var stack []string
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		switch state[name] {
		case visiting:
			for i, n := range stack {
				if n == name {
					cycle = append(append([]string{}, stack[i:]...), name)
					break
				}
			}
			return true
		case done:
			return false
		}
		state[name] = visiting
		stack = append(stack, name)
		for _, dep := range deps[name] {
			if visit(dep) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return false
	}

	names := make([]string, 0, len(r.exports))
	for name := range r.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if visit(name) {
			return &domain.ResolveError{
				Kind:   domain.ResolveCyclicImport,
				Names:  cycle,
				Detail: "exports import each other",
			}
		}
	}
	return nil
}

func malformed(n ast.Node, id int, format string, args ...any) error {
	return &domain.ResolveError{
		Kind:   domain.ResolveMalformed,
		Names:  []string{fmt.Sprintf("%s#%d", n.Kind(), id)},
		Detail: fmt.Sprintf(format, args...),
	}
}
