package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/librarydesk/console/internal/core/domain"
)

// SuccessDismissAfter is how long a success banner stays on screen.
const SuccessDismissAfter = 3 * time.Second

// Flash is a transient banner shown above a page.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
	// DismissAfter of zero means the banner stays until closed.
	DismissAfter time.Duration
}

// DismissMillis is used by the templates.
func (f *Flash) DismissMillis() int64 { return f.DismissAfter.Milliseconds() }

func Success(msg string) *Flash {
	return &Flash{Kind: "success", Message: msg, DismissAfter: SuccessDismissAfter}
}

func Failure(err error) *Flash {
	return &Flash{Kind: "error", Message: ErrorMessage(err)}
}

// ErrorMessage turns any error a page can see into a display string.
func ErrorMessage(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, domain.ErrAccessDenied):
		return "Access denied: this portal is for administrators only."
	case errors.Is(err, domain.ErrNoMemberAccount):
		return "Your sign-in is not linked to a member account. Please contact the library."
	case errors.Is(err, domain.ErrUnknownRole):
		return "Your account has an unrecognised role."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Username and password are required."
	case errors.Is(err, domain.ErrMalformedResponse):
		return "The library service returned an unexpected response."
	case errors.Is(err, domain.ErrInvalidTransition):
		return "That action is not allowed in the current state."
	}
	return err.Error()
}

// BookQuery holds the catalog filter inputs.
type BookQuery struct {
	Search        string
	Category      string
	AvailableOnly bool
}

// FilterBooks applies q to books. Search is a case-insensitive substring
// match over title, author and isbn; category is compared case-insensitively.
func FilterBooks(books []domain.Book, q BookQuery) []domain.Book {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if q.AvailableOnly && !b.Available() {
			continue
		}
		if q.Category != "" && !strings.EqualFold(b.Category, q.Category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) &&
			!strings.Contains(strings.ToLower(b.ISBN), needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Categories returns the distinct non-empty categories, sorted.
func Categories(books []domain.Book) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range books {
		if b.Category == "" {
			continue
		}
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	sort.Strings(out)
	return out
}

// FilterFines returns the fines in the selected status tab; an empty status selects all.
func FilterFines(fines []domain.Fine, status domain.FineStatus) []domain.Fine {
	out := make([]domain.Fine, 0, len(fines))
	for _, f := range fines {
		if status == "" || f.Status == status {
			out = append(out, f)
		}
	}
	return out
}

// OutstandingTotal sums what is still owed across fines.
func OutstandingTotal(fines []domain.Fine) float64 {
	var cents int64
	for _, f := range fines {
		cents += domain.Cents(f.Outstanding())
	}
	return float64(cents) / 100
}

// FilterReservations returns the reservations in the selected status tab.
func FilterReservations(rs []domain.Reservation, status domain.ReservationStatus) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(rs))
	for _, r := range rs {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// CountReservations counts reservations per status.
func CountReservations(rs []domain.Reservation) map[domain.ReservationStatus]int {
	counts := make(map[domain.ReservationStatus]int, len(domain.ReservationStatuses))
	for _, r := range rs {
		counts[r.Status]++
	}
	return counts
}

// FilterMembers matches search against name, email and contact.
func FilterMembers(ms []domain.Member, search string) []domain.Member {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Member, 0, len(ms))
	for _, m := range ms {
		if needle == "" ||
			strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Email), needle) ||
			strings.Contains(strings.ToLower(m.Contact), needle) {
			out = append(out, m)
		}
	}
	return out
}

// Percent returns part/whole as a whole percentage clamped to [0, 100].
func Percent(part, whole float64) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p := int(part / whole * 100)
	if p > 100 {
		return 100
	}
	return p
}
