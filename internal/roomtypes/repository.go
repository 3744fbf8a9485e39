package roomtypes

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetByCategory(ctx context.Context, category string) (*RoomTypeConfig, error)
	GetAll(ctx context.Context) ([]RoomTypeConfig, error)
	Upsert(ctx context.Context, config *RoomTypeConfig) error
	DeleteByCategory(ctx context.Context, category string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByCategory(ctx context.Context, category string) (*RoomTypeConfig, error) {
	var config RoomTypeConfig
	err := r.db.WithContext(ctx).Where("category = ?", category).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *repository) GetAll(ctx context.Context) ([]RoomTypeConfig, error) {
	var configs []RoomTypeConfig
	err := r.db.WithContext(ctx).Order("category ASC").Find(&configs).Error
	return configs, err
}

func (r *repository) Upsert(ctx context.Context, config *RoomTypeConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{"capacity", "pre_buffer_min", "post_buffer_min", "updated_at"}),
		}).
		Create(config).Error
}

func (r *repository) DeleteByCategory(ctx context.Context, category string) error {
	return r.db.WithContext(ctx).Delete(&RoomTypeConfig{}, "category = ?", category).Error
}
