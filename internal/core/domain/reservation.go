package domain

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationApproved  ReservationStatus = "APPROVED"
	ReservationNotified  ReservationStatus = "NOTIFIED"
	ReservationFulfilled ReservationStatus = "FULFILLED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationExpired   ReservationStatus = "EXPIRED"
)

// ReservationStatuses lists the statuses in display order.
var ReservationStatuses = []ReservationStatus{
	ReservationPending, ReservationApproved, ReservationNotified,
	ReservationFulfilled, ReservationCancelled, ReservationExpired,
}

// reservationTransitions defines the lifecycle a librarian can drive.
// Expiry is decided by the backend only.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:  {ReservationApproved, ReservationCancelled},
	ReservationApproved: {ReservationNotified, ReservationCancelled},
	ReservationNotified: {ReservationFulfilled, ReservationCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Next lists the statuses s can move to.
func (s ReservationStatus) Next() []ReservationStatus {
	return reservationTransitions[s]
}

// Reservation mirrors the backend's reservation record.
type Reservation struct {
	ID              int64             `json:"id,omitempty"`
	MemberID        int64             `json:"memberId"`
	BookID          int64             `json:"bookId"`
	BookTitle       string            `json:"bookTitle,omitempty"`
	Status          ReservationStatus `json:"status"`
	ReservationDate string            `json:"reservationDate,omitempty"`
	NotifiedDate    string            `json:"notifiedDate,omitempty"`
	ExpiryDate      string            `json:"expiryDate,omitempty"`
}
