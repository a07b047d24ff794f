package density

import _ "embed"

// Version is the release of this module, as written in the VERSION file.
//
//go:embed VERSION
var Version string
