// Package ast defines the density node schema: a closed set of 68 node kinds,
// the Input slot that holds a literal or a sub-tree, and the curve, positions
// and vector references nodes carry.
//
// Trees are built by the compiler from JSON or by hand (see pkg/dsl) and encoded
// back with Marshal. The resolver never mutates a tree it is given; it clones it first.
package ast
