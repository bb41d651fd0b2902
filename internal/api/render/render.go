// Package render turns page view models into HTML. Templates only display
// data and express intents as links and forms; they never fetch anything.
package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

//go:embed templates/*.html
var files embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Editable is implemented by records the templates can offer edit and delete
// intents for.
type Editable interface {
	EditURL() string
	DeleteURL() string
}

// Reservable is implemented by records a member can place a hold on.
type Reservable interface {
	ReserveURL() string
}

// NavItem is one link of the role navigation bar.
type NavItem struct {
	Label string
	Href  string
}

// View is what every page template receives.
type View struct {
	Title   string
	Session *domain.Session
	Flash   *service.Flash
	Nav     []NavItem
	Data    any
}

// Navigation returns the menu of a role.
func Navigation(role domain.Role) []NavItem {
	switch role {
	case domain.RoleAdmin:
		return []NavItem{
			{"Dashboard", "/admin/dashboard"},
			{"Accounts", "/admin/admins"},
			{"Members", "/members"},
			{"Books", "/librarian/books"},
			{"Reports", "/admin/reports"},
		}
	case domain.RoleLibrarian:
		return []NavItem{
			{"Dashboard", "/librarian/dashboard"},
			{"Books", "/librarian/books"},
			{"Circulation", "/librarian/desk"},
			{"Reservations", "/librarian/reservations"},
			{"Fines", "/librarian/fines"},
			{"Members", "/members"},
		}
	case domain.RoleMember:
		return []NavItem{
			{"Dashboard", "/member/dashboard"},
			{"Catalog", "/member/catalog"},
			{"My reservations", "/member/reservations"},
			{"My fines", "/member/fines"},
		}
	}
	return nil
}

// Renderer implements echo.Renderer. Each page is parsed together with the
// layout and the shared partials.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses every embedded page template.
func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(files, layoutFile, partialsFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == layoutFile || name == partialsFile {
			continue
		}
		page, err := template.Must(base.Clone()).ParseFS(files, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(path.Base(name), ".html")] = page
	}
	return r, nil
}

// Render executes the layout of page name.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"lower": func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
	"join":  strings.Join,
	"editable": func(v any) Editable {
		e, _ := v.(Editable)
		return e
	},
	"reservable": func(v any) Reservable {
		r, _ := v.(Reservable)
		return r
	},
	"dict":          dict,
	"fineStatuses":  func() []domain.FineStatus { return domain.FineStatuses },
	"resStatuses":   func() []domain.ReservationStatus { return domain.ReservationStatuses },
	"canCancel":     func(s domain.ReservationStatus) bool { return s.CanTransitionTo(domain.ReservationCancelled) },
	"eqStatus":      func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
	"countOf":       countOf,
	"width":         func(pct int) template.CSS { return template.CSS(fmt.Sprintf("width: %d%%", pct)) },
	"settled":       func(f domain.Fine) bool { return f.Settled() },
	"outstandingOf": func(f domain.Fine) float64 { return f.Outstanding() },
	"membershipStatuses": func() []string {
		return []string{"ACTIVE", "SUSPENDED", "EXPIRED"}
	},
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// countOf reads a status count from either tab counter map.
func countOf(counts any, status any) int {
	switch m := counts.(type) {
	case map[domain.FineStatus]int:
		s, _ := status.(domain.FineStatus)
		return m[s]
	case map[domain.ReservationStatus]int:
		s, _ := status.(domain.ReservationStatus)
		return m[s]
	}
	return 0
}
