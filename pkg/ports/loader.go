package ports

import (
	"context"
	"strings"
)

// AssetKind selects one family of asset-pack documents.
type AssetKind string

const (
	// AssetDensity documents carry a density tree, bare or inside a
	// WorldStructure, Biome or Settings envelope.
	AssetDensity   AssetKind = "density"
	AssetCurve     AssetKind = "curve"
	AssetPositions AssetKind = "positions"
)

// AssetKinds lists every kind in the order a pack is loaded: assets before
// the documents that reference them.
var AssetKinds = []AssetKind{AssetCurve, AssetPositions, AssetDensity}

// AssetSource defines how the engine reads an asset pack.
// This allows the storage layer (directory, Loam, memory) to be decoupled.
type AssetSource interface {
	// List returns the IDs of every asset of a kind, sorted.
	// An ID is a slash-separated path without extension, e.g. "Biomes/forest".
	List(ctx context.Context, kind AssetKind) ([]string, error)

	// Load returns the raw JSON of one asset.
	// Returns domain.ErrNotFound if the asset does not exist.
	Load(ctx context.Context, kind AssetKind, id string) ([]byte, error)
}

// Watchable defines an interface for sources that can notify about pack changes.
// This is typically used for hot-reload in long-running servers.
type Watchable interface {
	// Watch returns a channel that receives the ID of each changed asset.
	Watch(ctx context.Context) (<-chan string, error)
}

// KindOf classifies a pack asset ID by its top-level directory: "Curves/..."
// holds curves, "Positions/..." positions, and everything else density documents.
func KindOf(id string) AssetKind {
	top, _, _ := strings.Cut(id, "/")
	switch strings.ToLower(top) {
	case "curves":
		return AssetCurve
	case "positions":
		return AssetPositions
	default:
		return AssetDensity
	}
}
