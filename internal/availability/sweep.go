package availability

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Interval is the scheduler's read-only view of one booked occupancy of a
// room category. Intervals are half-open: [Start, End). Two intervals that
// share only a boundary instant do not overlap.
type Interval struct {
	ID    uuid.UUID `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// sweepEvent is a transient value used only inside PeakOccupancy: an instant
// paired with an occupancy delta (+1 start, -1 end).
type sweepEvent struct {
	at    time.Time
	delta int
}

// PeakOccupancy computes the maximum number of intervals simultaneously
// active at any single instant within the window [from, to), counting only
// the portion of each interval that overlaps the window.
//
// Ties at equal instants apply end events before start events: under the
// half-open convention an interval ending at t and another starting at t are
// adjacent, not concurrent.
func PeakOccupancy(intervals []Interval, from, to time.Time) int {
	events := make([]sweepEvent, 0, len(intervals)*2)

	for _, iv := range intervals {
		// Clip to the window
		start := iv.Start
		if start.Before(from) {
			start = from
		}
		end := iv.End
		if end.After(to) {
			end = to
		}

		// Zero-width after clipping means no true overlap with the window
		if !start.Before(end) {
			continue
		}

		events = append(events, sweepEvent{at: start, delta: +1}, sweepEvent{at: end, delta: -1})
	}

	if len(events) == 0 {
		return 0
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			return events[i].delta < events[j].delta
		}
		return events[i].at.Before(events[j].at)
	})

	peak := 0
	active := 0
	for _, ev := range events {
		active += ev.delta
		if active > peak {
			peak = active
		}
	}

	return peak
}
