package reservations

import "time"

// ReservationResponse is the API shape of a persisted reservation.
type ReservationResponse struct {
	ID           string    `json:"id"`
	RoomCategory string    `json:"room_category"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	GuestName    string    `json:"guest_name,omitempty"`
	GuestEmail   string    `json:"guest_email,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PaginatedReservations wraps an admin listing page.
type PaginatedReservations struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

func ToReservationResponse(r *Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID.String(),
		RoomCategory: r.RoomCategory,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		GuestName:    r.GuestName,
		GuestEmail:   r.GuestEmail,
		Note:         r.Note,
		CreatedAt:    r.CreatedAt,
	}
}
