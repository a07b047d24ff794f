package density

import (
	"context"
	"fmt"

	"github.com/terranova/density/internal/compiler"
	"github.com/terranova/density/internal/resolver"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/ports"
	"github.com/terranova/density/pkg/registry"
)

// PackProblem describes one asset that could not be loaded or resolved.
type PackProblem struct {
	Kind    ports.AssetKind `json:"kind"`
	ID      string          `json:"id"`
	Message string          `json:"message"`
	Err     error           `json:"-"`
}

func (p PackProblem) Error() string {
	return fmt.Sprintf("%s %s: %s", p.Kind, p.ID, p.Message)
}

func (p PackProblem) Unwrap() error { return p.Err }

// PackReport summarizes a pack load.
type PackReport struct {
	Curves    int           `json:"curves"`
	Positions int           `json:"positions"`
	Documents int           `json:"documents"`
	Exports   int           `json:"exports"`
	Problems  []PackProblem `json:"problems,omitempty"`
}

// OK reports whether every asset loaded cleanly.
func (r *PackReport) OK() bool { return len(r.Problems) == 0 }

func (r *PackReport) problem(kind ports.AssetKind, id string, err error) {
	r.Problems = append(r.Problems, PackProblem{Kind: kind, ID: id, Message: err.Error(), Err: err})
}

// LoadPack registers every curve, positions set and named export of src into
// the engine's registry. Broken assets are reported and skipped; the call
// only fails when the source itself cannot be listed or read.
func (e *Engine) LoadPack(ctx context.Context, src ports.AssetSource) (*PackReport, error) {
	report, _, err := e.loadPack(ctx, src, e.registry.Load())
	if err != nil {
		return nil, err
	}
	e.logPack("pack loaded", report)
	return report, nil
}

// ReloadPack loads src into a fresh registry and swaps it in once loading
// succeeded. Programs compiled before the swap keep the assets they were
// resolved with; later compiles see the new pack.
func (e *Engine) ReloadPack(ctx context.Context, src ports.AssetSource) (*PackReport, error) {
	reg := registry.NewRegistry()
	report, _, err := e.loadPack(ctx, src, reg)
	if err != nil {
		return nil, err
	}
	e.registry.Store(reg)
	e.logPack("pack reloaded", report)
	return report, nil
}

func (e *Engine) logPack(msg string, report *PackReport) {
	e.logger.Info(msg,
		"curves", report.Curves,
		"positions", report.Positions,
		"documents", report.Documents,
		"exports", report.Exports,
		"problems", len(report.Problems))
}

// ValidatePack loads src into a scratch registry and resolves every density
// document against it. The engine's own registry is not touched.
func (e *Engine) ValidatePack(ctx context.Context, src ports.AssetSource) (*PackReport, error) {
	reg := registry.NewRegistry()
	report, docs, err := e.loadPack(ctx, src, reg)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := resolver.Resolve(doc.root, resolver.WithRegistry(reg), resolver.WithLogger(e.logger)); err != nil {
			report.problem(ports.AssetDensity, doc.id, err)
		}
	}
	return report, nil
}

type packDoc struct {
	id   string
	root ast.Node
}

func (e *Engine) loadPack(ctx context.Context, src ports.AssetSource, reg *registry.Registry) (*PackReport, []packDoc, error) {
	report := &PackReport{}
	var docs []packDoc

	for _, kind := range ports.AssetKinds {
		ids, err := src.List(ctx, kind)
		if err != nil {
			return nil, nil, fmt.Errorf("list %s assets: %w", kind, err)
		}
		for _, id := range ids {
			data, err := src.Load(ctx, kind, id)
			if err != nil {
				return nil, nil, fmt.Errorf("load %s %s: %w", kind, id, err)
			}

			switch kind {
			case ports.AssetCurve:
				c, err := compiler.ParseCurve(data)
				if err != nil {
					report.problem(kind, id, err)
					continue
				}
				reg.RegisterCurve(id, c)
				report.Curves++

			case ports.AssetPositions:
				p, err := compiler.ParsePositions(data)
				if err != nil {
					report.problem(kind, id, err)
					continue
				}
				reg.RegisterPositions(id, p)
				report.Positions++

			case ports.AssetDensity:
				root, err := e.parser.ParseDocument(data)
				if err != nil {
					report.problem(kind, id, err)
					continue
				}
				report.Documents++
				docs = append(docs, packDoc{id: id, root: root})
				report.Exports += registerExports(reg, root, id, report)
			}
		}
	}
	return report, docs, nil
}

// registerExports publishes the named Exported nodes of a document.
// Nested exports inside an export body are published too.
func registerExports(reg *registry.Registry, root ast.Node, id string, report *PackReport) int {
	n := 0
	ast.Walk(root, func(node ast.Node) bool {
		exp, ok := node.(*ast.Exported)
		if !ok || ast.Or(exp.Name, "") == "" {
			return true
		}
		if err := reg.RegisterExport(*exp.Name, exp, id); err != nil {
			report.problem(ports.AssetDensity, id, err)
			return true
		}
		n++
		return true
	})
	return n
}
