package web

import "embed"

// StaticFS serves the portal's stylesheet and other fixed assets.
//
//go:embed static
var StaticFS embed.FS
