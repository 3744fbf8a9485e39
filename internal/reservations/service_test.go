package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomly/internal/availability"
	"roomly/internal/roomtypes"

	"github.com/google/uuid"
)

type mockRepository struct {
	GetByIDFunc                 func(ctx context.Context, id uuid.UUID) (*Reservation, error)
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	ListFunc                    func(ctx context.Context, query ListQuery) ([]Reservation, int64, error)
	CreateWithCapacityCheckFunc func(ctx context.Context, reservation *Reservation, capacity int) error
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockRepository) List(ctx context.Context, query ListQuery) ([]Reservation, int64, error) {
	return m.ListFunc(ctx, query)
}

func (m *mockRepository) CreateWithCapacityCheck(ctx context.Context, reservation *Reservation, capacity int) error {
	return m.CreateWithCapacityCheckFunc(ctx, reservation, capacity)
}

func (m *mockRepository) OverlappingIntervals(ctx context.Context, category string, from, to time.Time) ([]availability.Interval, error) {
	return nil, nil
}

func (m *mockRepository) LatestEndBefore(ctx context.Context, category string, at time.Time) (*time.Time, error) {
	return nil, nil
}

func (m *mockRepository) EarliestStartAfter(ctx context.Context, category string, at time.Time) (*time.Time, error) {
	return nil, nil
}

func (m *mockRepository) IntervalAt(ctx context.Context, category string, at time.Time) (*availability.Interval, error) {
	return nil, nil
}

type mockPolicyResolver struct {
	ResolveFunc func(ctx context.Context, category string) (roomtypes.Policy, error)
}

func (m *mockPolicyResolver) Resolve(ctx context.Context, category string) (roomtypes.Policy, error) {
	return m.ResolveFunc(ctx, category)
}

type mockNotifier struct {
	confirmed []*Reservation
	cancelled []*Reservation
	err       error
}

func (m *mockNotifier) ReservationConfirmed(ctx context.Context, reservation *Reservation) error {
	m.confirmed = append(m.confirmed, reservation)
	return m.err
}

func (m *mockNotifier) ReservationCancelled(ctx context.Context, reservation *Reservation) error {
	m.cancelled = append(m.cancelled, reservation)
	return m.err
}

func capacityResolver(capacity int) *mockPolicyResolver {
	return &mockPolicyResolver{
		ResolveFunc: func(ctx context.Context, category string) (roomtypes.Policy, error) {
			return roomtypes.Policy{Capacity: capacity}, nil
		},
	}
}

func TestCreateReservation(t *testing.T) {
	var gotCapacity int
	repo := &mockRepository{
		CreateWithCapacityCheckFunc: func(ctx context.Context, reservation *Reservation, capacity int) error {
			gotCapacity = capacity
			reservation.ID = uuid.New()
			return nil
		},
	}

	svc := NewService(repo, capacityResolver(23))
	notifier := &mockNotifier{}
	svc.SetNotifier(notifier)

	reservation, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		RoomCategory: "STANDARD",
		Start:        "2026-05-01T14:00:00Z",
		End:          "2026-05-02T10:00:00Z",
		GuestName:    "Ava Martin",
		GuestEmail:   "ava@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotCapacity != 23 {
		t.Errorf("capacity passed to gate = %d, want 23", gotCapacity)
	}
	if reservation.RoomCategory != "STANDARD" {
		t.Errorf("room category = %q", reservation.RoomCategory)
	}
	wantStart := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)
	if !reservation.StartTime.Equal(wantStart) {
		t.Errorf("start = %v, want %v", reservation.StartTime, wantStart)
	}
	if len(notifier.confirmed) != 1 {
		t.Errorf("confirmation notifications = %d, want 1", len(notifier.confirmed))
	}
}

func TestCreateReservationDurationHours(t *testing.T) {
	var stored *Reservation
	repo := &mockRepository{
		CreateWithCapacityCheckFunc: func(ctx context.Context, reservation *Reservation, capacity int) error {
			stored = reservation
			return nil
		},
	}

	svc := NewService(repo, capacityResolver(1))

	_, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		RoomCategory:  "FAMILY",
		Start:         "2026-05-01T14:00:00Z",
		DurationHours: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantEnd := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	if !stored.EndTime.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", stored.EndTime, wantEnd)
	}
}

func TestCreateReservationInvalidIntervals(t *testing.T) {
	repo := &mockRepository{
		CreateWithCapacityCheckFunc: func(ctx context.Context, reservation *Reservation, capacity int) error {
			t.Fatal("gate must not be reached for invalid input")
			return nil
		},
	}

	svc := NewService(repo, capacityResolver(1))

	tests := []struct {
		name string
		req  CreateReservationRequest
	}{
		{"end before start", CreateReservationRequest{
			RoomCategory: "STANDARD",
			Start:        "2026-05-02T10:00:00Z",
			End:          "2026-05-01T10:00:00Z",
		}},
		{"zero width", CreateReservationRequest{
			RoomCategory: "STANDARD",
			Start:        "2026-05-01T10:00:00Z",
			End:          "2026-05-01T10:00:00Z",
		}},
		{"missing end and duration", CreateReservationRequest{
			RoomCategory: "STANDARD",
			Start:        "2026-05-01T10:00:00Z",
		}},
		{"malformed start", CreateReservationRequest{
			RoomCategory: "STANDARD",
			Start:        "yesterday",
			End:          "2026-05-02T10:00:00Z",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateReservation(context.Background(), tt.req); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCreateReservationConflictPropagates(t *testing.T) {
	repo := &mockRepository{
		CreateWithCapacityCheckFunc: func(ctx context.Context, reservation *Reservation, capacity int) error {
			return ErrConflict
		},
	}

	svc := NewService(repo, capacityResolver(1))
	notifier := &mockNotifier{}
	svc.SetNotifier(notifier)

	_, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		RoomCategory:  "FAMILY",
		Start:         "2026-05-01T14:00:00Z",
		DurationHours: 24,
	})

	if !errors.Is(err, ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
	if len(notifier.confirmed) != 0 {
		t.Error("conflicting booking must not queue a confirmation")
	}
}

func TestCreateReservationNotifierFailureDoesNotFailBooking(t *testing.T) {
	repo := &mockRepository{
		CreateWithCapacityCheckFunc: func(ctx context.Context, reservation *Reservation, capacity int) error {
			return nil
		},
	}

	svc := NewService(repo, capacityResolver(5))
	svc.SetNotifier(&mockNotifier{err: errors.New("kafka down")})

	if _, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		RoomCategory:  "STANDARD",
		Start:         "2026-05-01T14:00:00Z",
		DurationHours: 3,
	}); err != nil {
		t.Fatalf("booking failed on notification error: %v", err)
	}
}

func TestCancelReservation(t *testing.T) {
	id := uuid.New()
	existing := &Reservation{ID: id, RoomCategory: "FAMILY"}

	deleted := false
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, got uuid.UUID) (*Reservation, error) {
			if got != id {
				return nil, ErrNotFound
			}
			return existing, nil
		},
		DeleteFunc: func(ctx context.Context, got uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := NewService(repo, capacityResolver(1))
	notifier := &mockNotifier{}
	svc.SetNotifier(notifier)

	if err := svc.CancelReservation(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("reservation row was not deleted")
	}
	if len(notifier.cancelled) != 1 {
		t.Errorf("cancellation notifications = %d, want 1", len(notifier.cancelled))
	}
}

func TestCancelReservationNotFound(t *testing.T) {
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*Reservation, error) {
			return nil, ErrNotFound
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("delete must not run for a missing reservation")
			return nil
		},
	}

	svc := NewService(repo, capacityResolver(1))

	if err := svc.CancelReservation(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestResolveIntervalDateOnly(t *testing.T) {
	req := CreateReservationRequest{
		RoomCategory: "STANDARD",
		Start:        "2026-05-01",
		End:          "2026-05-03",
	}

	start, end, err := req.ResolveInterval()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !start.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want midnight", start)
	}
	if !end.Equal(time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want midnight", end)
	}
}
