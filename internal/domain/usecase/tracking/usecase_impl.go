package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/gateway/db"
	"rainwatch/internal/domain/model"
	"rainwatch/internal/domain/usecase/task"
	"rainwatch/pkg/log"
	"rainwatch/pkg/msg"
)

// ErrInvalidRow is returned for a submission without a title
var ErrInvalidRow = errors.New("invalid tracking row")

type trackingUseCase struct {
	gateway     db.TrackingGateway
	taskUseCase task.UseCase
	now         func() time.Time
}

// NewTrackingUseCase builds the use case; now may be nil
func NewTrackingUseCase(gateway db.TrackingGateway, taskUseCase task.UseCase, now func() time.Time) UseCase {
	if now == nil {
		now = time.Now
	}
	return &trackingUseCase{
		gateway:     gateway,
		taskUseCase: taskUseCase,
		now:         now,
	}
}

func (uc *trackingUseCase) RegisterSubmission(ctx context.Context, dto model.CreateTrackingRowDTO) (*entity.TrackingRow, error) {
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, errors.Join(ErrInvalidRow, errors.New(msg.GetMessage("tracking.error.empty-title")))
	}

	row, err := uc.gateway.Create(ctx, entity.TrackingRow{Title: title, Notes: dto.Notes})
	if err != nil {
		return nil, fmt.Errorf("failed to store tracking row: %w", err)
	}

	created, err := uc.taskUseCase.CreateTask(ctx, title, dto.Notes, entity.Date{})
	if err != nil {
		// The row stays without a task id and is never polled.
		return row, fmt.Errorf("failed to create task for row %d: %w", row.ID, err)
	}

	if err := uc.gateway.UpdateTaskID(ctx, row.ID, created.GID); err != nil {
		return row, fmt.Errorf("failed to link task %s to row %d: %w", created.GID, row.ID, err)
	}
	row.TaskID = created.GID

	log.Info(msg.GetMessage("tracking.log.registered"), zap.Uint("row_id", row.ID), zap.String("task_id", created.GID))
	return row, nil
}

func (uc *trackingUseCase) SyncCompletions(ctx context.Context, requestID string) (*model.SyncReport, error) {
	logger := log.With(zap.String("request_id", requestID))

	rows, err := uc.gateway.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending rows: %w", err)
	}

	report := &model.SyncReport{}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		current, err := uc.taskUseCase.GetTask(ctx, row.TaskID)
		if err != nil {
			report.Failed++
			logger.Warn(msg.GetMessage("tracking.log.lookup-failed"),
				zap.Uint("row_id", row.ID),
				zap.String("task_id", row.TaskID),
				zap.Error(err))
			continue
		}
		if !current.Completed {
			continue
		}

		if err := uc.gateway.MarkCompleted(ctx, row.ID, uc.now()); err != nil {
			report.Failed++
			logger.Error(msg.GetMessage("tracking.log.update-failed"), zap.Uint("row_id", row.ID), zap.Error(err))
			continue
		}
		report.Completed++
	}

	logger.Info(msg.GetMessage("tracking.log.synced"),
		zap.Int("checked", report.Checked),
		zap.Int("completed", report.Completed),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (uc *trackingUseCase) FindAll(ctx context.Context, page int, size int) (*model.Page[entity.TrackingRow], error) {
	rows, err := uc.gateway.FindAll(ctx, page*size, size)
	if err != nil {
		return nil, err
	}
	total, err := uc.gateway.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewPage(rows, page, size, total), nil
}
