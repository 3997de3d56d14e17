package db

import (
	"context"
	"time"

	"rainwatch/internal/domain/entity"
)

type TrackingGateway interface {
	Migrate() error

	Create(ctx context.Context, row entity.TrackingRow) (*entity.TrackingRow, error)
	UpdateTaskID(ctx context.Context, id uint, taskID string) error
	MarkCompleted(ctx context.Context, id uint, completedAt time.Time) error

	// FindPending returns rows that have a task and are not completed, oldest first
	FindPending(ctx context.Context) ([]entity.TrackingRow, error)
	FindAll(ctx context.Context, offset int, limit int) ([]entity.TrackingRow, error)
	CountAll(ctx context.Context) (int64, error)
}
