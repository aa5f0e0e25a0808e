// Package web embeds the static dashboard frontend.
package web

import "embed"

//go:embed index.html
var FS embed.FS
