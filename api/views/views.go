// Package views renders the server-side shop and cart pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/angelmondragon/museum-cart/internal/cartview"
	"github.com/angelmondragon/museum-cart/internal/shop"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer writes full HTML pages.
type Renderer struct {
	tmpl *template.Template
}

// funcs are available to every page. pathSegment escapes a value for use as a
// single path element, so ids containing "/" or "%" still address one item.
var funcs = template.FuncMap{
	"pathSegment": url.PathEscape,
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Shop renders the product list.
func (r *Renderer) Shop(w http.ResponseWriter, page shop.Page) error {
	return r.execute(w, "shop", page)
}

// Cart renders the cart page. Sections absent from the page model are not drawn.
func (r *Renderer) Cart(w http.ResponseWriter, page cartview.Page) error {
	return r.execute(w, "cart", page)
}

// execute buffers so a template failure never leaves a half-written page.
func (r *Renderer) execute(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the page assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
