package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

func renderString(t *testing.T, r *Renderer, name string, v View) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf, name, v, nil); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func TestRenderer_BookCardIntents(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	books := []domain.Book{{ID: 4, Title: "Dune", Author: "Herbert", ISBN: "1", CopiesAvailable: 1, TotalCopies: 1}}
	page := &service.CatalogPage{Books: books, Total: 1}
	librarian := &domain.Session{Username: "lib", Role: domain.RoleLibrarian}
	member := &domain.Session{Username: "m", Role: domain.RoleMember}

	staff := renderString(t, r, "books", View{Title: "Books", Session: librarian, Nav: Navigation(librarian.Role), Data: page})
	if !strings.Contains(staff, "/librarian/books/4/edit") || !strings.Contains(staff, "/librarian/books/4/delete") {
		t.Fatalf("expected edit and delete intents:\n%s", staff)
	}
	if strings.Contains(staff, "/member/books/4/reserve") {
		t.Fatal("staff view must not offer reserve")
	}

	catalog := renderString(t, r, "catalog", View{Title: "Catalog", Session: member, Nav: Navigation(member.Role), Data: page})
	if !strings.Contains(catalog, "/member/books/4/reserve") {
		t.Fatalf("expected reserve intent:\n%s", catalog)
	}
	if strings.Contains(catalog, "/librarian/books/4/edit") {
		t.Fatal("member view must not offer edit")
	}
}

func TestRenderer_Banner(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ok := renderString(t, r, "error", View{Title: "x", Flash: service.Success("Saved."), Data: map[string]any{"Status": 200, "Message": ""}})
	if !strings.Contains(ok, `data-dismiss-ms="3000"`) || !strings.Contains(ok, "Saved.") {
		t.Fatalf("expected auto-dismissing success banner:\n%s", ok)
	}

	bad := renderString(t, r, "error", View{Title: "x", Flash: &service.Flash{Kind: "error", Message: "Nope"}, Data: map[string]any{"Status": 502, "Message": ""}})
	if !strings.Contains(bad, `data-dismiss-ms="0"`) || !strings.Contains(bad, `role="alert"`) {
		t.Fatalf("expected sticky error banner:\n%s", bad)
	}
}

func TestRenderer_EveryPageRendersEmptyModels(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	admin := &domain.Session{Username: "root", Role: domain.RoleAdmin}

	pages := map[string]any{
		"login":               map[string]any{"Portal": "admin", "Action": "/admin/login", "Username": ""},
		"register":            map[string]any{"Username": "", "Name": "", "Email": "", "Contact": ""},
		"error":               map[string]any{"Status": 404, "Message": "not found"},
		"admin_dashboard":     &service.AdminDashboard{Summary: service.Section[*domain.ReportSummary]{Err: "reports offline"}},
		"librarian_dashboard": &service.LibrarianDashboard{},
		"member_dashboard":    &service.MemberDashboard{},
		"books":               &service.CatalogPage{},
		"book_form":           map[string]any{"Book": domain.Book{ID: 1}},
		"catalog":             &service.CatalogPage{},
		"fines": map[string]any{
			"Page":    &service.FinesPage{Fines: []domain.Fine{{ID: 1, Amount: 5, Status: domain.FineUnpaid}}, Counts: map[domain.FineStatus]int{domain.FineUnpaid: 1}},
			"Manage":  true,
			"BaseURL": "/librarian/fines",
		},
		"reservations": map[string]any{
			"Page":    &service.ReservationsPage{Reservations: []domain.Reservation{{ID: 2, Status: domain.ReservationPending}}},
			"Manage":  true,
			"BaseURL": "/librarian/reservations",
		},
		"members":     &service.MembersPage{Members: []domain.Member{{ID: 3, Name: "Ann"}}},
		"member_form": domain.Member{ID: 3},
		"admins":      map[string]any{"Page": &service.AdminsPage{Admins: []domain.Admin{{ID: 1, Username: "root"}}}, "Self": "root"},
		"admin_form":  domain.Admin{ID: 1, Role: "ADMIN"},
		"desk":        &service.DeskPage{Member: &domain.Member{ID: 3}, Search: "x"},
		"reports":     &service.ReportsPage{},
	}
	for name, data := range pages {
		if !r.Has(name) {
			t.Fatalf("missing page %s", name)
		}
		out := renderString(t, r, name, View{Title: name, Session: admin, Nav: Navigation(admin.Role), Data: data})
		if !strings.Contains(out, "<h1>"+name+"</h1>") {
			t.Fatalf("%s: layout not applied", name)
		}
	}
}

func TestRenderer_ReservationActionsFollowLifecycle(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	page := &service.ReservationsPage{Reservations: []domain.Reservation{
		{ID: 1, Status: domain.ReservationApproved},
		{ID: 2, Status: domain.ReservationFulfilled},
	}}
	out := renderString(t, r, "reservations", View{Title: "r", Data: map[string]any{
		"Page": page, "Manage": true, "BaseURL": "/librarian/reservations",
	}})
	if !strings.Contains(out, `value="NOTIFIED"`) || !strings.Contains(out, "/librarian/reservations/1/transition") {
		t.Fatalf("expected notify action for approved reservation:\n%s", out)
	}
	if strings.Contains(out, "/librarian/reservations/2/transition") {
		t.Fatal("fulfilled reservation must not offer actions")
	}
}

func TestNavigation(t *testing.T) {
	if len(Navigation(domain.RoleMember)) == 0 || Navigation(domain.Role("x")) != nil {
		t.Fatal("unexpected navigation")
	}
}
