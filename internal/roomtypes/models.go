package roomtypes

import (
	"time"

	"github.com/google/uuid"
)

// Room category tags used across the booking system. Categories are free-form
// strings in storage; these are the ones the hotel actually sells.
const (
	CategoryStandard = "STANDARD"
	CategoryFamily   = "FAMILY"
)

// RoomTypeConfig is the persisted per-category scheduling policy: how many
// rooms of the category exist (capacity) and the turnaround buffers required
// around each stay.
type RoomTypeConfig struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Category       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"category"`
	Capacity       int       `gorm:"not null" json:"capacity"`
	PreBufferMin   int       `gorm:"not null;default:0" json:"pre_buffer_min"`
	PostBufferMin  int       `gorm:"not null;default:0" json:"post_buffer_min"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name for RoomTypeConfig
func (RoomTypeConfig) TableName() string {
	return "room_type_configs"
}

// Policy is the resolved scheduling view of a category: what the availability
// engine needs, independent of where the values came from (row or default).
type Policy struct {
	Capacity   int           `json:"capacity"`
	PreBuffer  time.Duration `json:"pre_buffer"`
	PostBuffer time.Duration `json:"post_buffer"`
}

// ToPolicy converts a persisted configuration row into a resolved Policy.
func (c *RoomTypeConfig) ToPolicy() Policy {
	return Policy{
		Capacity:   c.Capacity,
		PreBuffer:  time.Duration(c.PreBufferMin) * time.Minute,
		PostBuffer: time.Duration(c.PostBufferMin) * time.Minute,
	}
}

// DefaultPolicies returns the built-in fallback table used when no
// configuration row exists for a category. FAMILY is the limited single-room
// category; STANDARD is the high-volume category. Modeled as an explicit map
// so tests and callers can substitute their own table.
func DefaultPolicies() map[string]Policy {
	return map[string]Policy{
		CategoryStandard: {Capacity: 23},
		CategoryFamily:   {Capacity: 1},
	}
}

// FallbackCategory is the default applied to unknown category tags.
const FallbackCategory = CategoryStandard

// UpsertConfigRequest is the admin payload for creating or replacing a
// category configuration.
type UpsertConfigRequest struct {
	Category      string `json:"category" binding:"required,min=1,max=50"`
	Capacity      int    `json:"capacity" binding:"required,min=1"`
	PreBufferMin  int    `json:"pre_buffer_min" binding:"min=0"`
	PostBufferMin int    `json:"post_buffer_min" binding:"min=0"`
}
