// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are available to every page template.
var Funcs = template.FuncMap{
	"fmtTime": func(t time.Time) string { return t.Local().Format("02 Jan 2006, 15:04") },
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}
