package web

import "embed"

// DistFS embeds the default single-page app bundle. A SITE_DIR on disk
// takes precedence at runtime.
//
//go:embed dist
var DistFS embed.FS
