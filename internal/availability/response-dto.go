package availability

import "time"

// BlockResponse is the payload of the point-in-time block lookup.
type BlockResponse struct {
	Category string    `json:"category"`
	At       time.Time `json:"at"`
	Blocked  bool      `json:"blocked"`
	Interval *Interval `json:"interval,omitempty"`
}
