// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the admin interface.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"courseadmin/internal/markdown"
	"courseadmin/internal/middleware"
	"courseadmin/internal/models"
	"courseadmin/internal/session"
)

//go:embed templates/admin/*.html templates/partials/*.html
var templateFS embed.FS

// PageData holds all data passed to admin templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	Section   string          // Active sidebar section (e.g., "dashboard", "courses")
	Session   *session.Data   // Current admin session (nil if unauthenticated)
	CSRFToken string          // CSRF token for forms and HTMX headers
	Data      map[string]any  // Page-specific data
	Flashes   []session.Flash // One-time notification messages
}

// Renderer handles template parsing and execution for admin pages.
type Renderer struct {
	templates map[string]*template.Template
	partials  *template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login": true,
}

// sectionGroups maps a sidebar group to the sections it expands for.
var sectionGroups = map[string][]string{
	"category":    {"category_types", "categories"},
	"course":      {"courses", "course_materials"},
	"resources":   {"free_resources", "free_resource_materials"},
	"counselling": {"counselling", "counselling_requests"},
}

// New creates a Renderer by parsing all admin templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true the layout shows an environment badge and loads
// the unminified HTMX build.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap:   funcMap(devMode),
	}

	partials, err := template.New("partials").Funcs(r.funcMap).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.partials = partials

	pages, err := fs.Glob(templateFS, "templates/admin/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(templateFS, page)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/admin/base.html", page, "templates/partials/*.html",
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full admin page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// For full page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code, used when a form is
// re-rendered after a validation or upstream failure.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}

	execName := "base.html"
	switch {
	case isHTMX(r) && !standaloneTemplates[name]:
		execName = "content"
	case standaloneTemplates[name]:
		execName = name + ".html"
	}

	var buf strings.Builder
	if err := executeTemplate(&buf, tmpl, execName, data); err != nil {
		slog.Error("render page failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

// Fragment renders a named partial (e.g. the <option> lists behind the
// dependent dropdowns) without any layout.
func (rn *Renderer) Fragment(w http.ResponseWriter, name string, data any) {
	var buf strings.Builder
	if err := executeTemplate(&buf, rn.partials, name, data); err != nil {
		slog.Error("render fragment failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, buf.String())
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func funcMap(devMode bool) template.FuncMap {
	return template.FuncMap{
		"activeClass": func(current, target string) string {
			if current == target {
				return "nav-link active"
			}
			return "nav-link"
		},
		// groupOpen reports whether a collapsible sidebar group holds the
		// current section.
		"groupOpen": func(current, group string) bool {
			for _, s := range sectionGroups[group] {
				if s == current {
					return true
				}
			}
			return false
		},
		"isDev": func() bool {
			return devMode
		},
		// md renders a Markdown description. Raw HTML in the source is
		// dropped by the converter, so the output is safe to embed.
		"md": func(s string) template.HTML {
			out, err := markdown.ToHTML(s)
			if err != nil {
				return template.HTML(template.HTMLEscapeString(s))
			}
			return template.HTML(out)
		},
		"excerpt": markdown.Excerpt,
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("02 Jan 2006, 15:04")
		},
		// eqID compares IDs regardless of whether they arrive as
		// models.ID or plain strings.
		"eqID": func(a, b any) bool {
			return fmt.Sprint(a) == fmt.Sprint(b)
		},
		// imageURL lets inline base64 banner images through the src
		// sanitizer. Anything that is not a data:image URI stays a
		// plain string and is filtered as usual.
		"imageURL": func(s string) any {
			if strings.HasPrefix(s, "data:image/") {
				return template.URL(s)
			}
			return s
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"statusClass": func(s models.OrderStatus) string {
			switch s {
			case models.OrderStatusDelivered:
				return "badge badge-success"
			case models.OrderStatusPending:
				return "badge badge-warning"
			case models.OrderStatusProcessing:
				return "badge badge-info"
			case models.OrderStatusCancel:
				return "badge badge-danger"
			}
			return "badge"
		},
		// dict builds a map from alternating key/value arguments, for
		// passing several values into a partial.
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				key, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[key] = kv[i+1]
			}
			return m, nil
		},
	}
}
