package domain

// ReportSummary is the backend's library-wide counters.
type ReportSummary struct {
	TotalBooks          int     `json:"totalBooks"`
	TotalCopies         int     `json:"totalCopies"`
	AvailableCopies     int     `json:"availableCopies"`
	TotalMembers        int     `json:"totalMembers"`
	ActiveBorrowings    int     `json:"activeBorrowings"`
	OverdueBorrowings   int     `json:"overdueBorrowings"`
	PendingReservations int     `json:"pendingReservations"`
	OutstandingFines    float64 `json:"outstandingFines"`
}

// PopularBook is one row of the popularity report.
type PopularBook struct {
	BookID      int64  `json:"bookId"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	BorrowCount int    `json:"borrowCount"`
}

// FineSummary aggregates fines by status.
type FineSummary struct {
	TotalIssued    float64 `json:"totalIssued"`
	TotalCollected float64 `json:"totalCollected"`
	TotalWaived    float64 `json:"totalWaived"`
	Outstanding    float64 `json:"outstanding"`
	UnpaidCount    int     `json:"unpaidCount"`
}
