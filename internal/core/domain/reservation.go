package domain

// ReservationStatus is the lifecycle state of a reservation request.
type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationAccepted ReservationStatus = "accepted"
	ReservationRejected ReservationStatus = "rejected"
)

// ValidReservationStatus reports whether s is a status a cafe owner may set.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPending, ReservationAccepted, ReservationRejected:
		return true
	}
	return false
}

// Reservation is a record owned by the reservation backend. CafeName is the
// denormalized join key used for owner-side lookups.
type Reservation struct {
	ID        string            `json:"id"`
	Requester string            `json:"requester"`
	CafeID    string            `json:"cafe_id"`
	CafeName  string            `json:"cafe_name"`
	Status    ReservationStatus `json:"status"`
	Date      string            `json:"date"`
	Notes     string            `json:"notes,omitempty"`
}
