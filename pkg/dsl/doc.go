/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing density documents.

It allows developers to define density trees and whole asset packs using a type-safe, fluent builder pattern
instead of hand-writing JSON. This is particularly useful for generated packs, unit testing, and leveraging
IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"context"

		"github.com/terranova/density"
		"github.com/terranova/density/pkg/dsl"
	)

	func main() {
		hills := dsl.Noise2D("hills", 128, 4).
			Amplify(24).
			Add(dsl.Gradient(1, -1, 48, 112)).
			Export("hills")

		src, err := dsl.New().
			Document("Density/hills", hills).
			Curve("Curves/ramp", [2]float64{-1, 0}, [2]float64{1, 1}).
			Build()
		if err != nil {
			panic(err)
		}

		// The resulting source can be loaded as an asset pack
		eng := density.New()
		_, _ = eng.LoadPack(context.Background(), src)
	}
*/
package dsl
