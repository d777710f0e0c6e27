package docs

import "embed"

// FS contains the long-form guide bundled with the saga binary.
//
//go:embed guide
var FS embed.FS
