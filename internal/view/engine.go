package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutFile = "layout.html"

// Renderer turns a named view and its model into markup.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Engine renders the embedded page templates.
type Engine struct {
	pages map[string]*template.Template
}

var _ Renderer = (*Engine)(nil)

type options struct {
	fsys fs.FS
	dir  string
}

// Option customises an Engine.
type Option func(*options)

// WithTemplates loads templates from dir in fsys instead of the embedded set.
// dir must contain layout.html.
func WithTemplates(fsys fs.FS, dir string) Option {
	return func(o *options) {
		o.fsys = fsys
		o.dir = dir
	}
}

// New parses all page templates.
func New(opts ...Option) (*Engine, error) {
	o := options{fsys: templateFS, dir: "templates"}
	for _, opt := range opts {
		opt(&o)
	}

	layout, err := template.New(layoutFile).Funcs(Funcs()).ParseFS(o.fsys, path.Join(o.dir, layoutFile))
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(o.fsys, path.Join(o.dir, "*.html"))
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		base := path.Base(file)
		if base == layoutFile {
			continue
		}
		page, err := template.Must(layout.Clone()).ParseFS(o.fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", base, err)
		}
		pages[strings.TrimSuffix(base, ".html")] = page
	}
	return &Engine{pages: pages}, nil
}

// MustNew is New for the embedded templates, panicking on a parse error.
func MustNew() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

// Render executes the named view inside the layout.
func (e *Engine) Render(name string, data any) (string, error) {
	page, ok := e.pages[name]
	if !ok {
		return "", fmt.Errorf("view %q not found", name)
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render view %s: %w", name, err)
	}
	return buf.String(), nil
}

// Names lists the available views.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.pages))
	for name := range e.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Static returns the embedded stylesheets and images.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"price":         formatPrice,
		"productsPath":  ProductsPath,
		"itemsPath":     ItemsPath,
		"cartPath":      CartPath,
		"cartItemsPath": CartItemsPath,
		"ordersPath":    OrdersPath,
		"newOrderPath":  NewOrderPath,
		"orderPath":     OrderPath,
	}
}

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
