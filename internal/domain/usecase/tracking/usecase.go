package tracking

import (
	"context"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model"
)

type UseCase interface {
	// RegisterSubmission stores a row, creates its task and writes the task id back
	RegisterSubmission(ctx context.Context, dto model.CreateTrackingRowDTO) (*entity.TrackingRow, error)

	// SyncCompletions marks rows whose task was completed
	SyncCompletions(ctx context.Context, requestID string) (*model.SyncReport, error)

	FindAll(ctx context.Context, page int, size int) (*model.Page[entity.TrackingRow], error)
}
