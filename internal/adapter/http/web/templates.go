package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages. Each page is addressed by its file
// name, for example "dashboard.html".
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"percent": formatPercent,
	}).ParseFS(templateFS, "templates/*.html"))
}
