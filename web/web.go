// Package web holds the server-rendered page shells. Behaviour lives in the
// client scripts served from the static directory.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page describes one shell and the script that drives it.
type Page struct {
	Name   string
	Path   string
	Title  string
	Script string
}

// Pages lists every shell in navigation order.
var Pages = []Page{
	{Name: "index", Path: "/", Title: "To-Do", Script: "main.js"},
	{Name: "add", Path: "/add", Title: "Add To-Do", Script: "add.js"},
	{Name: "prepare", Path: "/prepare", Title: "Prepare Session", Script: "prepare.js"},
	{Name: "work", Path: "/work", Title: "Work Session", Script: "work.js"},
	{Name: "history", Path: "/history", Title: "History", Script: "history.js"},
}

type pageData struct {
	AppName string
	Page    Page
	Nav     []Page
}

// Renderer executes the embedded templates.
type Renderer struct {
	appName string
	pages   map[string]*template.Template
}

// NewRenderer parses the layout once per page so each page can define its
// own "content" block.
func NewRenderer(appName string) (*Renderer, error) {
	r := &Renderer{appName: appName, pages: make(map[string]*template.Template, len(Pages))}
	for _, p := range Pages {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+p.Name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", p.Name, err)
		}
		r.pages[p.Name] = tmpl
	}
	return r, nil
}

// Render returns the HTML for the named page.
func (r *Renderer) Render(name string) ([]byte, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var page Page
	for _, p := range Pages {
		if p.Name == name {
			page = p
			break
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", pageData{AppName: r.appName, Page: page, Nav: Pages}); err != nil {
		return nil, fmt.Errorf("render page %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
