// Package views renders the site's pages and htmx fragments from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/mitropolia-targovistei/calendar-site/internal/i18n"
	"github.com/mitropolia-targovistei/calendar-site/internal/seo"
)

//go:embed templates
var templateFS embed.FS

// Raw HTML in descriptions is escaped by goldmark; bluemonday strips anything unsafe
// that markdown itself can produce (javascript: links and the like).
var (
	mdRenderer = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))
	mdPolicy   = newDescriptionPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Markdown renders an event description to sanitized HTML.
func Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(mdPolicy.SanitizeBytes(buf.Bytes()))
}

// Renderer executes pages inside the base layout, or single fragments on their own.
type Renderer struct {
	bundle *i18n.Bundle
	base   *template.Template
	pages  map[string]*template.Template
}

// New parses the embedded templates. Every page under templates/pages is parsed into
// its own clone of the layout so each can define "content".
func New(bundle *i18n.Bundle) (*Renderer, error) {
	funcs := template.FuncMap{
		"t": func(lang, key string) string {
			if bundle == nil {
				return key
			}
			return bundle.T(lang, key)
		},
		"td": func(lang, key, def string) string {
			return translate(bundle, lang, key, def)
		},
		"markdown": Markdown,
		"jsonld": func(v any) template.JS {
			return template.JS(seo.JSON(v))
		},
		"add": func(a, b int) int { return a + b },
	}

	base, err := template.New("_root").Funcs(funcs).ParseFS(templateFS, "templates/layout.tmpl", "templates/partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", file, err)
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = t
	}

	return &Renderer{bundle: bundle, base: base, pages: pages}, nil
}

// Page renders a full page through the "base" layout.
func (r *Renderer) Page(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render page %s: %w", name, err)
	}
	return nil
}

// Fragment renders one named partial, as returned to htmx requests.
func (r *Renderer) Fragment(w io.Writer, name string, data any) error {
	if err := r.base.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render fragment %s: %w", name, err)
	}
	return nil
}
