/*
Package density is a deterministic evaluation engine for procedural terrain density functions.

A density function maps a world position to a number; terrain generators treat positive values as solid and negative values as air. Functions are described as JSON trees of typed nodes (noise, arithmetic, clamps, curves, spatial transforms, warps, shapes, caches, switches, imports) and are evaluated point by point or over whole grids.

# Concept

The engine separates the document (Logic) from the evaluation state (Session) and from the world it runs in (ContextInputs). A document is parsed into a typed tree, resolved against a pack of shared exports, curves and positions into an immutable Program, and then sampled through Sessions that own the per-node caches. This Hexagonal Architecture lets the engine be embedded in a CLI, an HTTP preview server or an AI agent through the Model Context Protocol.

# Key Features

  - Deterministic Evaluation: the same program, point and inputs always give the same value, bit for bit.
  - Hexagonal Architecture: the core is decoupled from adapters (asset sources, grid stores, transports).
  - Pack Resolution: imports are linked across documents, with cycle detection and typed errors.
  - Parallel Grids: columns are evaluated by a worker pool; a failing point becomes NaN without aborting the grid.

# Usage

Initialize the engine, optionally load an asset pack, then compile and evaluate documents.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/terranova/density"
		"github.com/terranova/density/pkg/domain"
	)

	func main() {
		eng := density.New()
		ctx := context.Background()

		prog, err := eng.Compile(ctx, []byte(`{"Type":"Sum","Inputs":[{"Type":"YValue"},-64]}`))
		if err != nil {
			log.Fatal(err)
		}

		// Single point
		v, err := eng.Evaluate(ctx, prog, domain.Vec3{X: 0, Y: 70, Z: 0}, nil)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(v)

		// A 16x16x16 chunk
		grid, err := eng.EvaluateGrid(ctx, prog, domain.Domain{
			Step: domain.Vec3{X: 1, Y: 1, Z: 1},
			Size: [3]int{16, 16, 16},
		}, nil)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(len(grid.Values), len(grid.Faults))
	}
*/
package density
