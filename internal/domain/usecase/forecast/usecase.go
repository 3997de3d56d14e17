package forecast

import (
	"context"
	"time"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model"
)

type UseCase interface {
	// Evaluate runs the evaluator over caller supplied samples. Empty labels
	// use the configured adverse labels.
	Evaluate(samples []entity.WeatherSample, referenceNow time.Time, adverseLabels []string) (*model.EvaluationResponse, error)

	// ListRegions returns the configured regions
	ListRegions() []entity.Region

	// FindRegion finds a configured region by name, ignoring case
	FindRegion(name string) (*entity.Region, error)

	// EvaluateRegion fetches a region's forecast and evaluates it without creating tasks
	EvaluateRegion(ctx context.Context, region entity.Region) (*model.EvaluationResponse, error)

	// EvaluateAllRegions previews every region in parallel
	EvaluateAllRegions(ctx context.Context) []model.RegionPreview

	// CheckRegion evaluates a region and creates a task for a new qualifying day
	CheckRegion(ctx context.Context, region entity.Region, requestID string) (*model.RegionCheckResult, error)

	// ScheduleAllRegions enqueues every region, or checks them inline when no queue is configured
	ScheduleAllRegions(ctx context.Context, requestID string) error

	// ListDispatches returns the recorded dispatches, newest first
	ListDispatches(ctx context.Context, page int, size int) (*model.Page[entity.AlertDispatch], error)
}
