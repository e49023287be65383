// Package render turns page data into HTML using the embedded templates.
package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
)

// Page names, one per template file.
const (
	PageName      = "name.html"
	PageHeadlines = "headlines.html"
	PageLink      = "link.html"
	PageImages    = "images.html"
)

const layoutFile = "templates/layout.html"

//go:embed templates/*.html
var templatesFS embed.FS

// ErrUnknownPage is returned when Render is asked for a page it never parsed.
var ErrUnknownPage = errors.New("unknown page")

// Page is the data every page template receives.
type Page struct {
	Name      string
	Headlines any
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, 4)}
	for _, page := range []string{PageName, PageHeadlines, PageLink, PageImages} {
		tmpl, err := template.New(page).ParseFS(templatesFS, layoutFile, "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes page into w. On error w may hold a partial document, so
// callers writing to a network connection should render into a buffer.
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}
