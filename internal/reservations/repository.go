package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roomly/internal/availability"
)

type Repository interface {
	// Core reservation operations
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query ListQuery) ([]Reservation, int64, error)

	// Concurrency-safe insertion gate: checks occupancy and inserts as one
	// atomic unit against the store.
	CreateWithCapacityCheck(ctx context.Context, reservation *Reservation, capacity int) error

	// Range queries used by the availability engine (availability.IntervalStore)
	OverlappingIntervals(ctx context.Context, category string, from, to time.Time) ([]availability.Interval, error)
	LatestEndBefore(ctx context.Context, category string, at time.Time) (*time.Time, error)
	EarliestStartAfter(ctx context.Context, category string, at time.Time) (*time.Time, error)
	IntervalAt(ctx context.Context, category string, at time.Time) (*availability.Interval, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Reservation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListQuery filters and paginates admin reservation listings.
type ListQuery struct {
	Category string `form:"category"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Reservation, int64, error) {
	var reservations []Reservation
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&Reservation{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("start_time ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&reservations).Error

	return reservations, totalCount, err
}

func (r *repository) applyFilters(query *gorm.DB, filters ListQuery) *gorm.DB {
	if filters.Category != "" {
		query = query.Where("room_category = ?", filters.Category)
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("end_time > ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			// Half-open day bound: include everything starting before the
			// end of the named day
			query = query.Where("start_time < ?", dateTo.AddDate(0, 0, 1))
		}
	}

	return query
}

// CreateWithCapacityCheck inserts the reservation only if the category stays
// within capacity throughout the new interval. The overlapping rows are
// locked FOR UPDATE so concurrent inserts for the same category and window
// serialize; this transaction is the authoritative conflict gate (the
// availability endpoint is advisory and may race harmlessly).
func (r *repository) CreateWithCapacityCheck(ctx context.Context, reservation *Reservation, capacity int) error {
	if !reservation.StartTime.Before(reservation.EndTime) {
		return ErrInvalidInterval
	}
	if capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", capacity)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock every overlapping row of the category
		var overlapping []Reservation
		err := tx.
			Set("gorm:query_option", "FOR UPDATE").
			Where("room_category = ? AND start_time < ? AND end_time > ?",
				reservation.RoomCategory, reservation.EndTime, reservation.StartTime).
			Find(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to lock overlapping reservations: %w", err)
		}

		// 2. Re-check occupancy under the lock; the candidate adds one on
		// top of the peak
		intervals := make([]availability.Interval, 0, len(overlapping))
		for i := range overlapping {
			intervals = append(intervals, overlapping[i].ToInterval())
		}
		peak := availability.PeakOccupancy(intervals, reservation.StartTime, reservation.EndTime)
		if peak+1 > capacity {
			return ErrConflict
		}

		// 3. Insert
		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})
}

// ============= AVAILABILITY ENGINE QUERIES =============

func (r *repository) OverlappingIntervals(ctx context.Context, category string, from, to time.Time) ([]availability.Interval, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Where("room_category = ? AND start_time < ? AND end_time > ?", category, to, from).
		Order("start_time ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	intervals := make([]availability.Interval, 0, len(reservations))
	for i := range reservations {
		intervals = append(intervals, reservations[i].ToInterval())
	}
	return intervals, nil
}

func (r *repository) LatestEndBefore(ctx context.Context, category string, at time.Time) (*time.Time, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Where("room_category = ? AND end_time <= ?", category, at).
		Order("end_time DESC").
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation.EndTime, nil
}

func (r *repository) EarliestStartAfter(ctx context.Context, category string, at time.Time) (*time.Time, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Where("room_category = ? AND start_time >= ?", category, at).
		Order("start_time ASC").
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation.StartTime, nil
}

func (r *repository) IntervalAt(ctx context.Context, category string, at time.Time) (*availability.Interval, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Where("room_category = ? AND start_time <= ? AND end_time > ?", category, at, at).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	interval := reservation.ToInterval()
	return &interval, nil
}
