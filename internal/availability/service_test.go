package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomly/internal/roomtypes"

	"github.com/google/uuid"
)

type mockStore struct {
	OverlappingIntervalsFunc func(ctx context.Context, category string, from, to time.Time) ([]Interval, error)
	LatestEndBeforeFunc      func(ctx context.Context, category string, at time.Time) (*time.Time, error)
	EarliestStartAfterFunc   func(ctx context.Context, category string, at time.Time) (*time.Time, error)
	IntervalAtFunc           func(ctx context.Context, category string, at time.Time) (*Interval, error)
}

func (m *mockStore) OverlappingIntervals(ctx context.Context, category string, from, to time.Time) ([]Interval, error) {
	if m.OverlappingIntervalsFunc != nil {
		return m.OverlappingIntervalsFunc(ctx, category, from, to)
	}
	return nil, nil
}

func (m *mockStore) LatestEndBefore(ctx context.Context, category string, at time.Time) (*time.Time, error) {
	if m.LatestEndBeforeFunc != nil {
		return m.LatestEndBeforeFunc(ctx, category, at)
	}
	return nil, nil
}

func (m *mockStore) EarliestStartAfter(ctx context.Context, category string, at time.Time) (*time.Time, error) {
	if m.EarliestStartAfterFunc != nil {
		return m.EarliestStartAfterFunc(ctx, category, at)
	}
	return nil, nil
}

func (m *mockStore) IntervalAt(ctx context.Context, category string, at time.Time) (*Interval, error) {
	if m.IntervalAtFunc != nil {
		return m.IntervalAtFunc(ctx, category, at)
	}
	return nil, nil
}

type mockPolicyResolver struct {
	ResolveFunc func(ctx context.Context, category string) (roomtypes.Policy, error)
}

func (m *mockPolicyResolver) Resolve(ctx context.Context, category string) (roomtypes.Policy, error) {
	return m.ResolveFunc(ctx, category)
}

func fixedPolicy(capacity int, pre, post time.Duration) *mockPolicyResolver {
	return &mockPolicyResolver{
		ResolveFunc: func(ctx context.Context, category string) (roomtypes.Policy, error) {
			return roomtypes.Policy{Capacity: capacity, PreBuffer: pre, PostBuffer: post}, nil
		},
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluateTariffsRequiresCategory(t *testing.T) {
	svc := NewService(&mockStore{}, fixedPolicy(1, 0, 0))

	if _, err := svc.EvaluateTariffs(context.Background(), "", time.Now()); err == nil {
		t.Fatal("expected error for empty category")
	}
}

func TestEvaluateTariffsPreBufferViolation(t *testing.T) {
	prevEnd := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	start := time.Date(2026, 4, 10, 10, 15, 0, 0, time.UTC)

	store := &mockStore{
		LatestEndBeforeFunc: func(ctx context.Context, category string, at time.Time) (*time.Time, error) {
			return timePtr(prevEnd), nil
		},
	}

	svc := NewService(store, fixedPolicy(5, 30*time.Minute, 0))

	decision, err := svc.EvaluateTariffs(context.Background(), "STANDARD", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decision.Allowed) != 0 {
		t.Errorf("allowed = %v, want empty", decision.Allowed)
	}
	if decision.Reason != ReasonTooCloseToPrevious {
		t.Errorf("reason = %q, want %q", decision.Reason, ReasonTooCloseToPrevious)
	}
	if decision.Neighbors.PreviousEnd == nil || !decision.Neighbors.PreviousEnd.Equal(prevEnd) {
		t.Errorf("neighbors.PreviousEnd = %v, want %v", decision.Neighbors.PreviousEnd, prevEnd)
	}
}

func TestEvaluateTariffsStartExactlyAtBufferBoundary(t *testing.T) {
	prevEnd := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	start := prevEnd.Add(30 * time.Minute)

	store := &mockStore{
		LatestEndBeforeFunc: func(ctx context.Context, category string, at time.Time) (*time.Time, error) {
			return timePtr(prevEnd), nil
		},
	}

	svc := NewService(store, fixedPolicy(1, 30*time.Minute, 0))

	decision, err := svc.EvaluateTariffs(context.Background(), "FAMILY", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// start == prevEnd + preBuffer satisfies the constraint; with no next
	// neighbor and no occupancy the whole catalog is admitted.
	want := []string{"3h", "10h", "24h"}
	assertCodes(t, decision.Allowed, want)
	if decision.Reason != "" {
		t.Errorf("reason = %q, want empty", decision.Reason)
	}
}

func TestEvaluateTariffsNextNeighborTrimsLongOffers(t *testing.T) {
	start := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	// Next stay begins 4h after the candidate start. With a 30m post
	// buffer only the 3h offer (3h30m footprint) fits.
	nextStart := start.Add(4 * time.Hour)

	store := &mockStore{
		EarliestStartAfterFunc: func(ctx context.Context, category string, at time.Time) (*time.Time, error) {
			return timePtr(nextStart), nil
		},
	}

	svc := NewService(store, fixedPolicy(1, 0, 30*time.Minute))

	decision, err := svc.EvaluateTariffs(context.Background(), "FAMILY", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCodes(t, decision.Allowed, []string{"3h"})
}

func TestEvaluateTariffsBufferedEndMeetingNextStartIsAdmitted(t *testing.T) {
	start := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	// Buffered end of the 3h offer lands exactly on the next start; the
	// half-open convention admits it.
	nextStart := start.Add(3*time.Hour + 30*time.Minute)

	store := &mockStore{
		EarliestStartAfterFunc: func(ctx context.Context, category string, at time.Time) (*time.Time, error) {
			return timePtr(nextStart), nil
		},
	}

	svc := NewService(store, fixedPolicy(1, 0, 30*time.Minute))

	decision, err := svc.EvaluateTariffs(context.Background(), "FAMILY", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCodes(t, decision.Allowed, []string{"3h"})
}

func TestEvaluateTariffsCapacityExhausted(t *testing.T) {
	start := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)

	// Two stays overlap the whole probe footprint; capacity 2 leaves no
	// room for the candidate.
	busy := []Interval{
		{ID: uuid.New(), Start: start.Add(-time.Hour), End: start.Add(48 * time.Hour)},
		{ID: uuid.New(), Start: start.Add(-time.Hour), End: start.Add(48 * time.Hour)},
	}

	store := &mockStore{
		OverlappingIntervalsFunc: func(ctx context.Context, category string, from, to time.Time) ([]Interval, error) {
			return busy, nil
		},
	}

	svc := NewService(store, fixedPolicy(2, 0, 0))

	decision, err := svc.EvaluateTariffs(context.Background(), "STANDARD", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decision.Allowed) != 0 {
		t.Errorf("allowed = %v, want empty", decision.Allowed)
	}
	if decision.Reason != "" {
		t.Errorf("capacity exhaustion must not set a whole-decision reason, got %q", decision.Reason)
	}
}

func TestEvaluateTariffsHighCapacityAdmitsDespiteOverlap(t *testing.T) {
	start := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)

	busy := make([]Interval, 0, 8)
	for i := 0; i < 8; i++ {
		busy = append(busy, Interval{
			ID:    uuid.New(),
			Start: start.Add(-time.Hour),
			End:   start.Add(48 * time.Hour),
		})
	}

	store := &mockStore{
		OverlappingIntervalsFunc: func(ctx context.Context, category string, from, to time.Time) ([]Interval, error) {
			return busy, nil
		},
	}

	svc := NewService(store, fixedPolicy(23, 30*time.Minute, 30*time.Minute))

	decision, err := svc.EvaluateTariffs(context.Background(), "STANDARD", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCodes(t, decision.Allowed, []string{"3h", "10h", "24h"})
	if decision.Buffers.Pre != 30 || decision.Buffers.Post != 30 {
		t.Errorf("buffers = %+v, want 30/30", decision.Buffers)
	}
}

func TestEvaluateTariffsPolicyErrorPropagates(t *testing.T) {
	resolverErr := errors.New("config store down")
	resolver := &mockPolicyResolver{
		ResolveFunc: func(ctx context.Context, category string) (roomtypes.Policy, error) {
			return roomtypes.Policy{}, resolverErr
		},
	}

	svc := NewService(&mockStore{}, resolver)

	if _, err := svc.EvaluateTariffs(context.Background(), "STANDARD", time.Now()); !errors.Is(err, resolverErr) {
		t.Fatalf("error = %v, want wrapped %v", err, resolverErr)
	}
}

func TestPeakEmptyWindow(t *testing.T) {
	svc := NewService(&mockStore{}, fixedPolicy(1, 0, 0))

	at := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	peak, err := svc.Peak(context.Background(), "STANDARD", at, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak != 0 {
		t.Errorf("peak over empty window = %d, want 0", peak)
	}
}

func TestBlockAt(t *testing.T) {
	at := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	blocking := &Interval{ID: uuid.New(), Start: at.Add(-time.Hour), End: at.Add(time.Hour)}

	store := &mockStore{
		IntervalAtFunc: func(ctx context.Context, category string, probe time.Time) (*Interval, error) {
			if probe.Equal(at) {
				return blocking, nil
			}
			return nil, nil
		},
	}

	svc := NewService(store, fixedPolicy(1, 0, 0))

	got, err := svc.BlockAt(context.Background(), "FAMILY", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != blocking.ID {
		t.Errorf("BlockAt = %+v, want %+v", got, blocking)
	}

	free, err := svc.BlockAt(context.Background(), "FAMILY", at.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if free != nil {
		t.Errorf("BlockAt outside any stay = %+v, want nil", free)
	}

	if _, err := svc.BlockAt(context.Background(), "", at); err == nil {
		t.Error("expected error for empty category")
	}
}

func assertCodes(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("allowed = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("allowed = %v, want %v (catalog order must be preserved)", got, want)
		}
	}
}
