package availability

import (
	"errors"
	"testing"
	"time"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "full RFC3339",
			input: "2026-04-10T15:30:00Z",
			want:  "2026-04-10T15:30:00Z",
		},
		{
			name:  "date-time without zone",
			input: "2026-04-10T15:30:00",
			want:  "2026-04-10T15:30:00Z",
		},
		{
			name:  "date-time without seconds",
			input: "2026-04-10T15:30",
			want:  "2026-04-10T15:30:00Z",
		},
		{
			name:  "bare date normalizes to midnight",
			input: "2026-04-10",
			want:  "2026-04-10T00:00:00Z",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
		{
			name:    "wrong separator",
			input:   "2026/04/10",
			wantErr: true,
		},
		{
			name:    "time only",
			input:   "15:30:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstant(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseInstant(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidInstant) {
					t.Errorf("ParseInstant(%q) error = %v, want ErrInvalidInstant", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseInstant(%q) unexpected error: %v", tt.input, err)
			}

			want, parseErr := time.Parse(time.RFC3339, tt.want)
			if parseErr != nil {
				t.Fatalf("bad want %q: %v", tt.want, parseErr)
			}

			if !got.Equal(want) {
				t.Errorf("ParseInstant(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}
