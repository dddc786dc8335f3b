// Package web embeds the built site assets served by the SPA fallback.
package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var assets embed.FS

// Dist returns the built site, rooted at the directory containing
// index.html.
func Dist() fs.FS {
	sub, err := fs.Sub(assets, "dist")
	if err != nil {
		panic(err)
	}
	return sub
}
