package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"rainwatch/internal/domain/usecase/tracking"
	"rainwatch/pkg/log"
	"rainwatch/pkg/msg"
)

// TrackingScheduler polls task completion on a fixed interval
type TrackingScheduler struct {
	scheduler gocron.Scheduler
	useCase   tracking.UseCase
	interval  time.Duration
}

// NewTrackingScheduler creates the poller. clock may be nil; tests pass a fake one.
func NewTrackingScheduler(useCase tracking.UseCase, interval time.Duration, clock clockwork.Clock) (*TrackingScheduler, error) {
	if interval <= 0 {
		return nil, errors.New("tracking sync interval must be positive")
	}

	options := []gocron.SchedulerOption{}
	if clock != nil {
		options = append(options, gocron.WithClock(clock))
	}
	scheduler, err := gocron.NewScheduler(options...)
	if err != nil {
		return nil, err
	}

	return &TrackingScheduler{scheduler: scheduler, useCase: useCase, interval: interval}, nil
}

// InitTrackingScheduleTasks registers the sync job and starts the scheduler.
// Overlapping runs are skipped.
func (s *TrackingScheduler) InitTrackingScheduleTasks(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.ExecuteScheduledTask),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithContext(ctx),
		gocron.WithName("tracking-sync"),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Info(msg.GetMessage("tracking.cron.started", s.interval))
	return nil
}

// ExecuteScheduledTask runs one completion sync
func (s *TrackingScheduler) ExecuteScheduledTask(ctx context.Context) {
	requestID := uuid.New().String()

	report, err := s.useCase.SyncCompletions(ctx, requestID)
	if err != nil {
		log.Error(msg.GetMessage("tracking.cron.failed"), zap.String("request_id", requestID), zap.Error(err))
		return
	}
	if report.Failed > 0 {
		log.Warn(msg.GetMessage("tracking.cron.partial", report.Failed), zap.String("request_id", requestID))
	}
}

// Stop shuts the scheduler down, waiting for a running sync
func (s *TrackingScheduler) Stop() error {
	return s.scheduler.Shutdown()
}
