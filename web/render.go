// Package web holds the page templates and the gin renderer that serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/render"

	"wellness-admin/calendar"
)

//go:embed templates/*.tmpl
var files embed.FS

// Pages lists every template a handler may render.
var Pages = []string{
	"login",
	"clients",
	"client_add",
	"appointments",
	"diet_write",
	"diet_lists",
	"diet_detail",
	"settings",
	"reports",
	"placeholder",
}

var funcs = template.FuncMap{
	"monthParam": calendar.Param,
	"inc":        func(i int) int { return i + 1 },
	"pageURL":    pageURL,
	"initial":    initial,
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// pageURL builds a list link that keeps the search term and page size.
func pageURL(path, query string, page, size int) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	return path + "?" + v.Encode()
}

// Renderer implements gin's render.HTMLRender. Each page is parsed with the
// shared layout and partials and executed from its "page" template.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(files,
			"templates/layout.tmpl",
			"templates/partials.tmpl",
			"templates/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		return render.String{Format: "unknown page %q", Data: []any{name}}
	}
	return render.HTML{Template: t, Name: "page", Data: data}
}
