// Package curve implements curve assets: scalar mappings used by shape and
// mapping nodes. A curve is a constant, a set of keys joined linearly, or a
// set of keys joined by a monotone cubic.
package curve
