// Package web holds the embedded HTML templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer executes named page templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{
			"currentYear": func() int { return time.Now().Year() },
		}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: tmpl}, nil
}

// Render executes the named template into w
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// StaticHandler serves the embedded static assets; mount it under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
