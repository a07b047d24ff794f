// Package resolver turns a parsed document into an executable program.
//
// Resolution clones the tree, gives every pipeline step a slot for the running
// value, registers the document's named exports, links every import (pulling
// exports from the pack registry when the document does not declare them),
// rejects import cycles and finally assigns each node a stable preorder
// identity along with its precomputed noise generators, curves, point sets and
// vectors.
package resolver
