package domain

// BorrowRecord mirrors the backend's borrowing record.
type BorrowRecord struct {
	ID         int64   `json:"id,omitempty"`
	MemberID   int64   `json:"memberId"`
	BookID     int64   `json:"bookId"`
	BookTitle  string  `json:"bookTitle,omitempty"`
	BorrowDate string  `json:"borrowDate,omitempty"`
	DueDate    string  `json:"dueDate,omitempty"`
	ReturnDate string  `json:"returnDate,omitempty"`
	Overdue    bool    `json:"overdue"`
	FineAmount float64 `json:"fineAmount,omitempty"`
}

// Returned reports whether the book came back.
func (b BorrowRecord) Returned() bool { return b.ReturnDate != "" }
