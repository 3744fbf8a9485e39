package reservations

import (
	"time"

	"github.com/google/uuid"

	"roomly/internal/availability"
)

// Reservation is one booked occupancy of a room category over the half-open
// interval [StartTime, EndTime). Rows are immutable once persisted;
// cancellation deletes the row.
type Reservation struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoomCategory string    `gorm:"type:varchar(50);not null;index:idx_reservations_category_window,priority:1" json:"room_category"`
	StartTime    time.Time `gorm:"not null;index:idx_reservations_category_window,priority:2" json:"start_time"`
	EndTime      time.Time `gorm:"not null;index:idx_reservations_category_window,priority:3" json:"end_time"`
	GuestName    string    `gorm:"type:varchar(200)" json:"guest_name,omitempty"`
	GuestEmail   string    `gorm:"type:varchar(200)" json:"guest_email,omitempty"`
	Note         string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// ToInterval converts a reservation into the scheduler's read view.
func (r *Reservation) ToInterval() availability.Interval {
	return availability.Interval{
		ID:    r.ID,
		Start: r.StartTime,
		End:   r.EndTime,
	}
}

// Overlaps reports whether the reservation overlaps [from, to) under
// half-open semantics.
func (r *Reservation) Overlaps(from, to time.Time) bool {
	return r.StartTime.Before(to) && r.EndTime.After(from)
}
