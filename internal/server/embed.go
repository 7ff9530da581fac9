package server

import (
	"embed"
	"html/template"

	"github.com/alnah/go-summary/internal/format"
)

//go:embed web/*.html
var webFS embed.FS

// pageTemplates parses the embedded workspace pages.
func pageTemplates() *template.Template {
	funcs := template.FuncMap{
		"count": format.Count,
		"size":  format.Size,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(webFS, "web/*.html"))
}
