package view

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDOM(t *testing.T, name string, data any) *goquery.Document {
	t.Helper()
	engine, err := New()
	require.NoError(t, err)

	markup, err := engine.Render(name, data)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func texts(sel *goquery.Selection) []string {
	return sel.Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
}

func TestEngineParsesAllViews(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	assert.Equal(t, []string{"404", "500", "cart", "checkout", "home", "items", "products", "receipt"}, engine.Names())
}

func TestRenderUnknownView(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	_, err = engine.Render("missing", nil)
	assert.Error(t, err)
}

func TestWithTemplatesOverridesEmbeddedSet(t *testing.T) {
	fsys := fstest.MapFS{
		"views/layout.html": {Data: []byte(`{{define "layout"}}[{{template "content" .}}]{{end}}`)},
		"views/hello.html":  {Data: []byte(`{{define "content"}}hello {{.}}{{end}}`)},
	}
	engine, err := New(WithTemplates(fsys, "views"))
	require.NoError(t, err)

	out, err := engine.Render("hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "[hello world]", out)
}

func TestErrorViewShowsFailure(t *testing.T) {
	doc := renderDOM(t, ErrorView, errors.New("database <unavailable>"))

	assert.Equal(t, "database <unavailable>", strings.TrimSpace(doc.Find("#error-detail").Text()))
	assert.Contains(t, doc.Find("title").Text(), "Internal error")
}

func TestNotFoundView(t *testing.T) {
	doc := renderDOM(t, NotFoundView, NotFoundPage{Path: "/nowhere"})

	assert.Equal(t, 1, doc.Find("#not-found").Length())
	assert.Equal(t, "/nowhere", doc.Find("#not-found .path").Text())
}

func TestHomeViewHasSearchForm(t *testing.T) {
	doc := renderDOM(t, HomeView, nil)

	form := doc.Find("form#search")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, ProductsPath(), form.AttrOr("action", ""))
	assert.Equal(t, "get", form.AttrOr("method", ""))
	assert.Equal(t, 1, form.Find("input[name='keyword']").Length())
}
