package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"roomly/internal/roomtypes"
	"roomly/pkg/logger"
)

// Machine-readable rejection reasons for the whole-decision (empty allowed
// set) case. Per-tariff capacity exhaustion carries no reason.
const (
	ReasonTooCloseToPrevious = "too close to previous reservation"
)

// IntervalStore is the read-only query surface the engine needs from the
// reservation store (to avoid a dependency on the reservations package).
type IntervalStore interface {
	// OverlappingIntervals returns every interval of the category with
	// start < to and end > from.
	OverlappingIntervals(ctx context.Context, category string, from, to time.Time) ([]Interval, error)
	// LatestEndBefore returns the latest end instant <= at, or nil.
	LatestEndBefore(ctx context.Context, category string, at time.Time) (*time.Time, error)
	// EarliestStartAfter returns the earliest start instant >= at, or nil.
	EarliestStartAfter(ctx context.Context, category string, at time.Time) (*time.Time, error)
	// IntervalAt returns the interval containing at, or nil if none.
	IntervalAt(ctx context.Context, category string, at time.Time) (*Interval, error)
}

// PolicyResolver resolves capacity and buffer policy for a category.
type PolicyResolver interface {
	Resolve(ctx context.Context, category string) (roomtypes.Policy, error)
}

// Neighbors bounds the free gap around a candidate start instant.
type Neighbors struct {
	PreviousEnd *time.Time `json:"previous_end"`
	NextStart   *time.Time `json:"next_start"`
}

// Buffers reports the applied turnaround policy in minutes.
type Buffers struct {
	Pre  int `json:"pre"`
	Post int `json:"post"`
}

// Decision is the outcome of one tariff admission evaluation.
type Decision struct {
	Category  string    `json:"category"`
	Start     time.Time `json:"start"`
	Allowed   []string  `json:"allowed"`
	Reason    string    `json:"reason,omitempty"`
	Neighbors Neighbors `json:"neighbors"`
	Buffers   Buffers   `json:"buffers"`
}

// Service is the room-interval availability engine.
type Service interface {
	// EvaluateTariffs filters the static tariff catalog down to the subset
	// that can legally start at the candidate instant.
	EvaluateTariffs(ctx context.Context, category string, start time.Time) (*Decision, error)
	// Peak returns the maximum concurrent occupancy within [from, to).
	Peak(ctx context.Context, category string, from, to time.Time) (int, error)
	// BlockAt returns the interval containing the given instant, if any.
	// Used for coarse UI blocking indicators, not for admission.
	BlockAt(ctx context.Context, category string, at time.Time) (*Interval, error)
}

type service struct {
	store   IntervalStore
	policy  PolicyResolver
	catalog []Tariff
}

// NewService creates the availability engine over an interval store and a
// policy resolver. The catalog is fixed at construction.
func NewService(store IntervalStore, policy PolicyResolver) Service {
	return &service{
		store:   store,
		policy:  policy,
		catalog: Catalog(),
	}
}

func (s *service) EvaluateTariffs(ctx context.Context, category string, start time.Time) (*Decision, error) {
	if category == "" {
		return nil, errors.New("room category is required")
	}

	policy, neighbors, err := s.gatherInputs(ctx, category, start)
	if err != nil {
		return nil, err
	}

	decision := &Decision{
		Category:  category,
		Start:     start,
		Allowed:   []string{},
		Neighbors: neighbors,
		Buffers: Buffers{
			Pre:  int(policy.PreBuffer / time.Minute),
			Post: int(policy.PostBuffer / time.Minute),
		},
	}

	// Hard pre-check: every tariff shares the candidate start, so a
	// pre-buffer violation rejects the whole menu at once.
	if neighbors.PreviousEnd != nil && start.Before(neighbors.PreviousEnd.Add(policy.PreBuffer)) {
		decision.Reason = ReasonTooCloseToPrevious
		logger.GetDefault().LogAvailabilityEvaluated(ctx, category, start, decision.Allowed, decision.Reason)
		return decision, nil
	}

	for _, tariff := range s.catalog {
		rawEnd := start.Add(tariff.Duration)
		bufferedEnd := rawEnd.Add(policy.PostBuffer)

		// The offer (plus its trailing buffer) must fit before the next
		// reservation begins.
		if neighbors.NextStart != nil && bufferedEnd.After(*neighbors.NextStart) {
			continue
		}

		peak, err := s.Peak(ctx, category, start, bufferedEnd)
		if err != nil {
			return nil, err
		}

		// The candidate itself occupies one room on top of the peak.
		if peak+1 <= policy.Capacity {
			decision.Allowed = append(decision.Allowed, tariff.Code)
		}
	}

	logger.GetDefault().LogAvailabilityEvaluated(ctx, category, start, decision.Allowed, decision.Reason)
	return decision, nil
}

// gatherInputs resolves policy and neighbors concurrently; the three reads
// are independent and the decision needs all of them.
func (s *service) gatherInputs(ctx context.Context, category string, start time.Time) (roomtypes.Policy, Neighbors, error) {
	var (
		wg        sync.WaitGroup
		policy    roomtypes.Policy
		prevEnd   *time.Time
		nextStart *time.Time
		policyErr error
		prevErr   error
		nextErr   error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		policy, policyErr = s.policy.Resolve(ctx, category)
	}()
	go func() {
		defer wg.Done()
		prevEnd, prevErr = s.store.LatestEndBefore(ctx, category, start)
	}()
	go func() {
		defer wg.Done()
		nextStart, nextErr = s.store.EarliestStartAfter(ctx, category, start)
	}()
	wg.Wait()

	if policyErr != nil {
		return roomtypes.Policy{}, Neighbors{}, fmt.Errorf("failed to resolve room type policy: %w", policyErr)
	}
	if prevErr != nil {
		return roomtypes.Policy{}, Neighbors{}, fmt.Errorf("failed to resolve previous neighbor: %w", prevErr)
	}
	if nextErr != nil {
		return roomtypes.Policy{}, Neighbors{}, fmt.Errorf("failed to resolve next neighbor: %w", nextErr)
	}

	return policy, Neighbors{PreviousEnd: prevEnd, NextStart: nextStart}, nil
}

func (s *service) Peak(ctx context.Context, category string, from, to time.Time) (int, error) {
	if !from.Before(to) {
		return 0, nil
	}

	intervals, err := s.store.OverlappingIntervals(ctx, category, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load overlapping intervals: %w", err)
	}

	return PeakOccupancy(intervals, from, to), nil
}

func (s *service) BlockAt(ctx context.Context, category string, at time.Time) (*Interval, error) {
	if category == "" {
		return nil, errors.New("room category is required")
	}

	interval, err := s.store.IntervalAt(ctx, category, at)
	if err != nil {
		return nil, fmt.Errorf("failed to look up blocking interval: %w", err)
	}
	return interval, nil
}
