// Package assets embeds the static files served by the web UI.
package assets

import _ "embed"

// Index is the raw (unminified) main page; the server minifies it at
// startup.
//
//go:embed index.html
var Index []byte
