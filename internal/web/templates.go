// Package web embeds the HTML templates rendered by the page handlers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page template. Each page is registered under its
// file name and shares the header and footer blocks of layout.html.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}
