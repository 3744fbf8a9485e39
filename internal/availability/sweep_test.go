package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", value, err)
	}
	return parsed
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{ID: uuid.New(), Start: ts(t, start), End: ts(t, end)}
}

func TestPeakOccupancy(t *testing.T) {
	tests := []struct {
		name      string
		intervals func(t *testing.T) []Interval
		from      string
		to        string
		want      int
	}{
		{
			name:      "no intervals",
			intervals: func(t *testing.T) []Interval { return nil },
			from:      "2026-03-01T00:00:00Z",
			to:        "2026-03-02T00:00:00Z",
			want:      0,
		},
		{
			name: "single interval containing the window",
			intervals: func(t *testing.T) []Interval {
				return []Interval{iv(t, "2026-03-01T00:00:00Z", "2026-03-05T00:00:00Z")}
			},
			from: "2026-03-02T00:00:00Z",
			to:   "2026-03-03T00:00:00Z",
			want: 1,
		},
		{
			name: "interval entirely outside the window",
			intervals: func(t *testing.T) []Interval {
				return []Interval{iv(t, "2026-03-01T00:00:00Z", "2026-03-01T06:00:00Z")}
			},
			from: "2026-03-02T00:00:00Z",
			to:   "2026-03-03T00:00:00Z",
			want: 0,
		},
		{
			name: "back to back stays never overlap",
			intervals: func(t *testing.T) []Interval {
				return []Interval{
					iv(t, "2026-03-01T10:00:00Z", "2026-03-01T12:00:00Z"),
					iv(t, "2026-03-01T12:00:00Z", "2026-03-01T14:00:00Z"),
				}
			},
			from: "2026-03-01T00:00:00Z",
			to:   "2026-03-02T00:00:00Z",
			want: 1,
		},
		{
			name: "three overlapping stays",
			intervals: func(t *testing.T) []Interval {
				return []Interval{
					iv(t, "2026-03-01T10:00:00Z", "2026-03-01T18:00:00Z"),
					iv(t, "2026-03-01T11:00:00Z", "2026-03-01T13:00:00Z"),
					iv(t, "2026-03-01T12:30:00Z", "2026-03-01T15:00:00Z"),
				}
			},
			from: "2026-03-01T00:00:00Z",
			to:   "2026-03-02T00:00:00Z",
			want: 3,
		},
		{
			name: "peak outside the window is clipped away",
			intervals: func(t *testing.T) []Interval {
				return []Interval{
					iv(t, "2026-03-01T08:00:00Z", "2026-03-01T10:00:00Z"),
					iv(t, "2026-03-01T09:00:00Z", "2026-03-01T10:30:00Z"),
					iv(t, "2026-03-01T12:00:00Z", "2026-03-01T13:00:00Z"),
				}
			},
			from: "2026-03-01T11:00:00Z",
			to:   "2026-03-01T14:00:00Z",
			want: 1,
		},
		{
			name: "interval touching window start only",
			intervals: func(t *testing.T) []Interval {
				return []Interval{iv(t, "2026-03-01T08:00:00Z", "2026-03-01T11:00:00Z")}
			},
			from: "2026-03-01T11:00:00Z",
			to:   "2026-03-01T14:00:00Z",
			want: 0,
		},
		{
			name: "many stacked at one instant",
			intervals: func(t *testing.T) []Interval {
				intervals := make([]Interval, 0, 8)
				for i := 0; i < 8; i++ {
					intervals = append(intervals, iv(t, "2026-03-01T09:00:00Z", "2026-03-01T17:00:00Z"))
				}
				return intervals
			},
			from: "2026-03-01T00:00:00Z",
			to:   "2026-03-02T00:00:00Z",
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeakOccupancy(tt.intervals(t), ts(t, tt.from), ts(t, tt.to))
			if got != tt.want {
				t.Errorf("PeakOccupancy() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPeakOccupancyEndBeforeStartAtSameInstant(t *testing.T) {
	// One guest checks out at noon, another checks in at noon. The half-open
	// convention means the room is free at the boundary, so the peak over
	// any window containing noon must stay at 1.
	intervals := []Interval{
		iv(t, "2026-03-01T06:00:00Z", "2026-03-01T12:00:00Z"),
		iv(t, "2026-03-01T12:00:00Z", "2026-03-01T18:00:00Z"),
	}

	got := PeakOccupancy(intervals, ts(t, "2026-03-01T11:59:00Z"), ts(t, "2026-03-01T12:01:00Z"))
	if got != 1 {
		t.Errorf("peak across the shared boundary = %d, want 1", got)
	}
}

func TestPeakOccupancyNarrowerWindowNeverIncreasesPeak(t *testing.T) {
	intervals := []Interval{
		iv(t, "2026-03-01T00:00:00Z", "2026-03-01T12:00:00Z"),
		iv(t, "2026-03-01T06:00:00Z", "2026-03-01T18:00:00Z"),
		iv(t, "2026-03-01T10:00:00Z", "2026-03-01T11:00:00Z"),
		iv(t, "2026-03-01T16:00:00Z", "2026-03-02T00:00:00Z"),
	}

	full := PeakOccupancy(intervals, ts(t, "2026-03-01T00:00:00Z"), ts(t, "2026-03-02T00:00:00Z"))

	windows := [][2]string{
		{"2026-03-01T00:00:00Z", "2026-03-01T06:00:00Z"},
		{"2026-03-01T06:00:00Z", "2026-03-01T12:00:00Z"},
		{"2026-03-01T10:00:00Z", "2026-03-01T10:30:00Z"},
		{"2026-03-01T12:00:00Z", "2026-03-02T00:00:00Z"},
	}

	for _, w := range windows {
		sub := PeakOccupancy(intervals, ts(t, w[0]), ts(t, w[1]))
		if sub > full {
			t.Errorf("window [%s, %s) peak %d exceeds full-window peak %d", w[0], w[1], sub, full)
		}
	}
}
