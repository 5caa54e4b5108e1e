package handlers

import (
	"embed"
	"io/fs"
)

// StaticFS embeds the browser client served at /.
//
//go:embed static
var StaticFS embed.FS

// staticAssets returns the client's asset tree rooted at static/assets and
// the bytes of its index page.
func staticAssets() (fs.FS, []byte, error) {
	assets, err := fs.Sub(StaticFS, "static/assets")
	if err != nil {
		return nil, nil, err
	}
	index, err := fs.ReadFile(StaticFS, "static/index.html")
	if err != nil {
		return nil, nil, err
	}
	return assets, index, nil
}
