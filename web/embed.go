// Package web embeds the HTML templates served by the component routers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewTemplates parses every embedded template into one set.
// Pages are looked up by file name ("login.html", "chat.html"); fragments by their define name.
func NewTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
