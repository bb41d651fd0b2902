package domain

import "fmt"

// Book mirrors the backend's book record.
type Book struct {
	ID              int64  `json:"id,omitempty"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	ISBN            string `json:"isbn"`
	CopiesAvailable int    `json:"copiesAvailable"`
	TotalCopies     int    `json:"totalCopies"`
}

// Available reports whether at least one copy can be borrowed.
func (b Book) Available() bool { return b.CopiesAvailable > 0 }

// Validate checks the copy counts. The backend stays authoritative.
func (b Book) Validate() error {
	if b.CopiesAvailable < 0 || b.TotalCopies < 0 {
		return Invalid("copies cannot be negative")
	}
	if b.CopiesAvailable > b.TotalCopies {
		return Invalid("available copies cannot exceed total copies")
	}
	return nil
}

func (b Book) EditURL() string    { return fmt.Sprintf("/librarian/books/%d/edit", b.ID) }
func (b Book) DeleteURL() string  { return fmt.Sprintf("/librarian/books/%d/delete", b.ID) }
func (b Book) ReserveURL() string { return fmt.Sprintf("/member/books/%d/reserve", b.ID) }
