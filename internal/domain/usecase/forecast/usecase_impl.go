package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/evaluator"
	"rainwatch/internal/domain/gateway/api"
	"rainwatch/internal/domain/gateway/db"
	"rainwatch/internal/domain/gateway/queue"
	"rainwatch/internal/domain/model"
	"rainwatch/internal/domain/usecase/task"
	"rainwatch/pkg/log"
	"rainwatch/pkg/msg"
)

// ErrRegionNotFound is returned by FindRegion for an unknown name
var ErrRegionNotFound = errors.New("region not found")

// previewConcurrency bounds parallel forecast fetches in EvaluateAllRegions
const previewConcurrency = 4

// Config holds the region list and scheduling options
type Config struct {
	Regions []entity.Region
	// QueueName enables fan-out through the queue; regions are checked inline when empty
	QueueName string
	// Location is the zone of the reference instant, UTC when nil
	Location *time.Location
	// Now overrides the clock, mainly for tests
	Now func() time.Time
}

type forecastUseCase struct {
	config          Config
	evaluator       *evaluator.Evaluator
	weatherGateway  api.WeatherGateway
	taskUseCase     task.UseCase
	dispatchGateway db.DispatchGateway
	queueSender     queue.Sender
}

// NewForecastUseCase wires the region check. dispatchGateway and queueSender may be nil.
func NewForecastUseCase(config Config, forecastEvaluator *evaluator.Evaluator, weatherGateway api.WeatherGateway, taskUseCase task.UseCase, dispatchGateway db.DispatchGateway, queueSender queue.Sender) UseCase {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if forecastEvaluator == nil {
		forecastEvaluator = evaluator.New()
	}
	return &forecastUseCase{
		config:          config,
		evaluator:       forecastEvaluator,
		weatherGateway:  weatherGateway,
		taskUseCase:     taskUseCase,
		dispatchGateway: dispatchGateway,
		queueSender:     queueSender,
	}
}

func (uc *forecastUseCase) referenceNow() time.Time {
	return uc.config.Now().In(uc.config.Location)
}

func (uc *forecastUseCase) Evaluate(samples []entity.WeatherSample, referenceNow time.Time, adverseLabels []string) (*model.EvaluationResponse, error) {
	e := uc.evaluator
	if len(adverseLabels) > 0 {
		e = evaluator.New(adverseLabels...)
	}
	return evaluate(e, samples, referenceNow)
}

func evaluate(e *evaluator.Evaluator, samples []entity.WeatherSample, referenceNow time.Time) (*model.EvaluationResponse, error) {
	result, err := e.Evaluate(samples, referenceNow)
	if err != nil {
		return nil, err
	}
	return &model.EvaluationResponse{
		EvaluationResult: result,
		ReferenceDate:    entity.DateOf(referenceNow),
		AdverseLabels:    e.Labels(),
		Days:             e.Summarize(samples),
	}, nil
}

func (uc *forecastUseCase) ListRegions() []entity.Region {
	regions := make([]entity.Region, len(uc.config.Regions))
	copy(regions, uc.config.Regions)
	return regions
}

func (uc *forecastUseCase) FindRegion(name string) (*entity.Region, error) {
	for _, region := range uc.config.Regions {
		if strings.EqualFold(region.Name, strings.TrimSpace(name)) {
			found := region
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, name)
}

func (uc *forecastUseCase) fetchSamples(ctx context.Context, region entity.Region) ([]entity.WeatherSample, error) {
	response, err := uc.weatherGateway.GetForecast(ctx, region.Latitude, region.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast for region %s: %w", region.Name, err)
	}
	return convertForecastResponse(response), nil
}

func (uc *forecastUseCase) EvaluateRegion(ctx context.Context, region entity.Region) (*model.EvaluationResponse, error) {
	samples, err := uc.fetchSamples(ctx, region)
	if err != nil {
		return nil, err
	}
	return evaluate(uc.evaluator, samples, uc.referenceNow())
}

func (uc *forecastUseCase) EvaluateAllRegions(ctx context.Context) []model.RegionPreview {
	previews := make([]model.RegionPreview, len(uc.config.Regions))

	var group errgroup.Group
	group.SetLimit(previewConcurrency)
	for i, region := range uc.config.Regions {
		group.Go(func() error {
			previews[i].Region = region
			evaluation, err := uc.EvaluateRegion(ctx, region)
			if err != nil {
				previews[i].Error = err.Error()
				return nil
			}
			previews[i].Evaluation = evaluation
			return nil
		})
	}
	_ = group.Wait()

	return previews
}

func (uc *forecastUseCase) CheckRegion(ctx context.Context, region entity.Region, requestID string) (*model.RegionCheckResult, error) {
	logger := log.With(zap.String("request_id", requestID), zap.String("region", region.Name))

	referenceNow := uc.referenceNow()
	samples, err := uc.fetchSamples(ctx, region)
	if err != nil {
		return nil, err
	}

	decision, err := uc.evaluator.Evaluate(samples, referenceNow)
	if err != nil {
		return nil, err
	}

	result := &model.RegionCheckResult{Region: region.Name}
	if !decision.HasQualifyingDay {
		logger.Info(msg.GetMessage("forecast.log.no-qualifying-day", region.Name))
		return result, nil
	}

	date := *decision.QualifyingDate
	result.QualifyingDate = &date

	if uc.dispatchGateway != nil {
		exists, err := uc.dispatchGateway.ExistsByRegionAndDate(ctx, region.Name, date)
		if err != nil {
			return nil, fmt.Errorf("failed to check previous dispatches: %w", err)
		}
		if exists {
			result.Duplicate = true
			logger.Info(msg.GetMessage("forecast.log.already-dispatched", region.Name, date))
			return result, nil
		}
	}

	created, err := uc.taskUseCase.CreateTask(ctx,
		msg.GetMessage("task.rain.name", region.Name, date),
		msg.GetMessage("task.rain.notes", region.City, region.Name, date, region.Description),
		entity.DateOf(referenceNow))
	if err != nil {
		return nil, fmt.Errorf("failed to create task for region %s: %w", region.Name, err)
	}
	result.TaskID = created.GID

	if uc.dispatchGateway != nil {
		_, err := uc.dispatchGateway.Create(ctx, entity.AlertDispatch{
			Region:         region.Name,
			QualifyingDate: date,
			TaskID:         created.GID,
		})
		if errors.Is(err, db.ErrDuplicateDispatch) {
			result.Duplicate = true
			logger.Warn(msg.GetMessage("forecast.log.concurrent-dispatch"), zap.String("task_id", created.GID))
		} else if err != nil {
			logger.Error(msg.GetMessage("forecast.log.dispatch-not-recorded"), zap.String("task_id", created.GID), zap.Error(err))
		}
	}

	logger.Info(msg.GetMessage("forecast.log.task-created", region.Name, date), zap.String("task_id", created.GID))
	return result, nil
}

func (uc *forecastUseCase) ScheduleAllRegions(ctx context.Context, requestID string) error {
	log.Info("Starting scheduled region check",
		zap.String("request_id", requestID),
		zap.Int("regions", len(uc.config.Regions)))

	if uc.queueSender == nil || uc.config.QueueName == "" {
		uc.checkRegionsInline(ctx, requestID)
		return nil
	}

	messages := make([]queue.BatchMessage, len(uc.config.Regions))
	for i, region := range uc.config.Regions {
		messages[i] = queue.BatchMessage{
			MessageID: regionMessageID(i),
			Body:      model.RegionMessage{RequestID: requestID, Region: region},
		}
	}

	result, err := uc.queueSender.SendMessageBatch(ctx, uc.config.QueueName, messages)
	if err != nil {
		return fmt.Errorf("failed to enqueue regions: %w", err)
	}

	for _, failedID := range result.Failed {
		for i, region := range uc.config.Regions {
			if regionMessageID(i) == failedID {
				log.Warn("Failed to enqueue region",
					zap.String("request_id", requestID),
					zap.String("region", region.Name))
				break
			}
		}
	}

	log.Info("Completed scheduled region check",
		zap.String("request_id", requestID),
		zap.Int("total_enqueued", len(result.Successful)),
		zap.Int("total_failed", len(result.Failed)))
	return nil
}

// checkRegionsInline checks regions one by one. A failing region is logged
// and never stops the others.
func (uc *forecastUseCase) checkRegionsInline(ctx context.Context, requestID string) {
	failed := 0
	for _, region := range uc.config.Regions {
		if ctx.Err() != nil {
			log.Warn("Region check interrupted", zap.String("request_id", requestID), zap.Error(ctx.Err()))
			return
		}
		if _, err := uc.CheckRegion(ctx, region, requestID); err != nil {
			failed++
			log.Error("Region check failed",
				zap.String("request_id", requestID),
				zap.String("region", region.Name),
				zap.Error(err))
		}
	}

	log.Info("Completed inline region check",
		zap.String("request_id", requestID),
		zap.Int("total_processed", len(uc.config.Regions)),
		zap.Int("total_failed", failed))
}

// regionMessageID is the batch entry id of the index-th region. SQS only
// accepts [A-Za-z0-9_-] there, so the request id travels in the body.
func regionMessageID(index int) string {
	return fmt.Sprintf("region-%d", index)
}

func (uc *forecastUseCase) ListDispatches(ctx context.Context, page int, size int) (*model.Page[entity.AlertDispatch], error) {
	if uc.dispatchGateway == nil {
		return model.NewPage([]entity.AlertDispatch{}, page, size, 0), nil
	}

	var dispatches []entity.AlertDispatch
	var total int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		dispatches, err = uc.dispatchGateway.FindAll(groupCtx, page*size, size)
		if err != nil {
			return fmt.Errorf("failed to find dispatches: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		total, err = uc.dispatchGateway.CountAll(groupCtx)
		if err != nil {
			return fmt.Errorf("failed to count dispatches: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return model.NewPage(dispatches, page, size, total), nil
}
