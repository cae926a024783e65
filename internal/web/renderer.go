// Package web holds the thin server-rendered view layer: an echo.Renderer
// over html/template with the page templates embedded in the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page is the render context assembled once per request and passed to the
// templates explicitly: the resolved principal, the consumed flash messages,
// and the page's own data. Nothing is mutated ambiently.
type Page struct {
	Title     string
	Principal *domain.Principal
	Flashes   []domain.Flash
	Data      any
}

// Renderer satisfies echo.Renderer.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
