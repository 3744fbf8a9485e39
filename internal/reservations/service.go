package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roomly/internal/roomtypes"
	"roomly/pkg/logger"
)

// Notifier publishes guest and staff notifications for reservation
// lifecycle events (interface here to avoid a circular dependency on the
// notifications package).
type Notifier interface {
	ReservationConfirmed(ctx context.Context, reservation *Reservation) error
	ReservationCancelled(ctx context.Context, reservation *Reservation) error
}

// PolicyResolver resolves the capacity policy used by the insertion gate.
type PolicyResolver interface {
	Resolve(ctx context.Context, category string) (roomtypes.Policy, error)
}

// Service implements the booking-confirmation boundary: the availability
// endpoint is advisory, this is where conflicts are authoritatively
// rejected.
type Service interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListReservations(ctx context.Context, query ListQuery) ([]Reservation, int64, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error

	// SetNotifier injects the optional notification publisher
	SetNotifier(notifier Notifier)
}

type service struct {
	repo     Repository
	policy   PolicyResolver
	notifier Notifier
}

func NewService(repo Repository, policy PolicyResolver) Service {
	return &service{
		repo:   repo,
		policy: policy,
	}
}

// SetNotifier injects the notification publisher; reservations work without
// one (notifications are best-effort).
func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*Reservation, error) {
	start, end, err := req.ResolveInterval()
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	policy, err := s.policy.Resolve(ctx, req.RoomCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve room type policy: %w", err)
	}

	reservation := &Reservation{
		RoomCategory: req.RoomCategory,
		StartTime:    start,
		EndTime:      end,
		GuestName:    req.GuestName,
		GuestEmail:   req.GuestEmail,
		Note:         req.Note,
	}

	if err := s.repo.CreateWithCapacityCheck(ctx, reservation, policy.Capacity); err != nil {
		if errors.Is(err, ErrConflict) {
			logger.GetDefault().LogReservationConflict(ctx, req.RoomCategory, start, end)
		}
		return nil, err
	}

	logger.GetDefault().LogReservationCreated(ctx, reservation.ID.String(), reservation.RoomCategory, start, end)

	// Notifications are queued after commit and never fail the booking
	if s.notifier != nil {
		if err := s.notifier.ReservationConfirmed(ctx, reservation); err != nil {
			logger.GetDefault().ErrorWithContext(ctx, "Failed to queue confirmation notifications", err,
				map[string]interface{}{"reservation_id": reservation.ID.String()})
		}
	}

	return reservation, nil
}

func (s *service) GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListReservations(ctx context.Context, query ListQuery) ([]Reservation, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *service) CancelReservation(ctx context.Context, id uuid.UUID) error {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.GetDefault().LogReservationCancelled(ctx, id.String(), reservation.RoomCategory)

	if s.notifier != nil {
		if err := s.notifier.ReservationCancelled(ctx, reservation); err != nil {
			logger.GetDefault().ErrorWithContext(ctx, "Failed to queue cancellation notifications", err,
				map[string]interface{}{"reservation_id": id.String()})
		}
	}

	return nil
}

// CreateReservationRequest accepts either an explicit end instant or a
// duration in hours on top of the start.
type CreateReservationRequest struct {
	RoomCategory  string `json:"room_category" binding:"required,min=1,max=50"`
	Start         string `json:"start" binding:"required"`
	End           string `json:"end,omitempty"`
	DurationHours int    `json:"duration_hours,omitempty" binding:"omitempty,min=1"`
	GuestName     string `json:"guest_name,omitempty" binding:"omitempty,max=200"`
	GuestEmail    string `json:"guest_email,omitempty" binding:"omitempty,email"`
	Note          string `json:"note,omitempty"`
}

// ResolveInterval normalizes the request into a concrete [start, end) pair.
func (r *CreateReservationRequest) ResolveInterval() (time.Time, time.Time, error) {
	start, err := parseInstant(r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}

	switch {
	case r.End != "":
		end, err := parseInstant(r.End)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
		}
		return start, end, nil
	case r.DurationHours > 0:
		return start, start.Add(time.Duration(r.DurationHours) * time.Hour), nil
	default:
		return time.Time{}, time.Time{}, errors.New("either end or duration_hours is required")
	}
}

var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseInstant(value string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("must be an ISO-8601 date or date-time")
}
