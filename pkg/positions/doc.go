// Package positions implements positions assets, the anchor point sets consulted
// by positions-based nodes. A set is either an explicit list or a seeded jittered
// lattice; both answer nearest-two queries under any domain.Metric.
package positions
