// Package web embeds the HTML templates and static assets so the binary
// and the tests run from any working directory.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates static
var FS embed.FS

// Templates parses the embedded template set.
func Templates() *template.Template {
	return template.Must(template.ParseFS(FS, "templates/*.html"))
}
