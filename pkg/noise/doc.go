// Package noise provides the deterministic noise primitives sampled by the
// evaluator: seeded simplex noise in two and three dimensions, octave layering
// and cell (Worley) noise.
//
// Every generator is a pure function of its seed and the sample coordinate.
// Seeds are derived from document strings with SeedFromString, so the same
// document yields the same field on every machine.
package noise
