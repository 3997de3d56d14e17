package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rainwatch/internal/domain/entity"
)

type GormTrackingGateway struct {
	DB *gorm.DB
}

var _ TrackingGateway = (*GormTrackingGateway)(nil)

func NewGormTrackingGateway(db *gorm.DB) *GormTrackingGateway {
	return &GormTrackingGateway{DB: db}
}

func (gateway *GormTrackingGateway) Migrate() error {
	return gateway.DB.AutoMigrate(&entity.TrackingRow{})
}

func (gateway *GormTrackingGateway) Create(ctx context.Context, row entity.TrackingRow) (*entity.TrackingRow, error) {
	if err := gateway.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (gateway *GormTrackingGateway) UpdateTaskID(ctx context.Context, id uint, taskID string) error {
	return gateway.updateColumns(ctx, id, map[string]any{"task_id": taskID})
}

func (gateway *GormTrackingGateway) MarkCompleted(ctx context.Context, id uint, completedAt time.Time) error {
	return gateway.updateColumns(ctx, id, map[string]any{
		"completed":    true,
		"completed_at": completedAt,
	})
}

func (gateway *GormTrackingGateway) updateColumns(ctx context.Context, id uint, columns map[string]any) error {
	result := gateway.DB.WithContext(ctx).
		Model(&entity.TrackingRow{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tracking row %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (gateway *GormTrackingGateway) FindPending(ctx context.Context) ([]entity.TrackingRow, error) {
	var rows []entity.TrackingRow
	err := gateway.DB.WithContext(ctx).
		Where("task_id <> ? AND completed = ?", "", false).
		Order("id").
		Find(&rows).Error
	return rows, err
}

func (gateway *GormTrackingGateway) FindAll(ctx context.Context, offset int, limit int) ([]entity.TrackingRow, error) {
	rows := make([]entity.TrackingRow, 0)
	err := gateway.DB.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (gateway *GormTrackingGateway) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := gateway.DB.WithContext(ctx).Model(&entity.TrackingRow{}).Count(&count).Error
	return count, err
}
