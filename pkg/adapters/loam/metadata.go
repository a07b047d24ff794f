package loam

// AssetMetadata is the part of a pack document the loader decodes while listing.
// It uses "mapstructure" tags to match the document keys, as Loam decodes
// front matter and JSON bodies with mapstructure.
type AssetMetadata struct {
	// Type is the root node kind of a density document, or the curve or
	// positions form ("Smooth", "Grid", ...). Empty for bare literals.
	Type string `json:"Type" mapstructure:"Type"`

	// Name is set on documents whose root is an Exported node.
	Name string `json:"Name" mapstructure:"Name"`
}
