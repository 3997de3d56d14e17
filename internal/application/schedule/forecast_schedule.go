package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"rainwatch/internal/domain/usecase/forecast"
	"rainwatch/pkg/log"
	"rainwatch/pkg/msg"
	"rainwatch/pkg/redis"
)

const forecastLockKey = "forecast_region_scheduler"

// ForecastSchedulerConfig holds configuration for the forecast scheduler
type ForecastSchedulerConfig struct {
	CronExpression  string
	Location        *time.Location
	LockTTL         time.Duration
	RefreshInterval time.Duration
	// RunTimeout bounds one scheduled run, zero means no bound
	RunTimeout time.Duration
}

// ForecastScheduler triggers the region check on a cron expression. With a
// redis client only the instance holding the lock runs it.
type ForecastScheduler struct {
	cron        *cron.Cron
	useCase     forecast.UseCase
	redisClient *redis.Client
	config      ForecastSchedulerConfig
	ctx         context.Context
}

// NewForecastScheduler creates the scheduler; redisClient may be nil for a single instance deployment
func NewForecastScheduler(useCase forecast.UseCase, redisClient *redis.Client, config ForecastSchedulerConfig) *ForecastScheduler {
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &ForecastScheduler{
		cron:        cron.New(cron.WithLocation(config.Location)),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
		ctx:         context.Background(),
	}
}

// InitForecastScheduleTasks validates the cron expression and starts the
// scheduler in the background.
func (s *ForecastScheduler) InitForecastScheduleTasks(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.config.CronExpression); err != nil {
		return fmt.Errorf("invalid forecast cron expression %q: %w", s.config.CronExpression, err)
	}
	s.ctx = ctx

	if s.redisClient == nil {
		if err := s.start(); err != nil {
			return err
		}
		go func() {
			<-ctx.Done()
			s.Stop()
			log.Info(msg.GetMessage("forecast.cron.stopped"))
		}()
		return nil
	}

	go s.runWithLock(ctx)
	return nil
}

func (s *ForecastScheduler) runWithLock(ctx context.Context) {
	lock := redis.NewScheduledTaskLock(
		s.redisClient,
		forecastLockKey,
		s.getLockTTL(),
		s.getRefreshInterval(),
		"forecast_schedules",
	)

	if err := lock.Lock(ctx); err != nil {
		log.Warn(msg.GetMessage("forecast.cron.lock-not-acquired"), zap.Error(err))
		return
	}
	defer func() { _ = lock.Unlock(context.WithoutCancel(ctx)) }()

	refreshErrChan := lock.AutoRefresh(ctx)

	if err := s.start(); err != nil {
		log.Error("Failed to start forecast scheduler", zap.Error(err))
		return
	}

	// Stop as soon as the lock can no longer be refreshed
	err := <-refreshErrChan
	s.Stop()

	if err != nil {
		log.Error(msg.GetMessage("forecast.cron.lock-lost"), zap.Error(err))
	} else {
		log.Info(msg.GetMessage("forecast.cron.stopped"))
	}
}

func (s *ForecastScheduler) start() error {
	if _, err := s.cron.AddFunc(s.config.CronExpression, s.ExecuteScheduledTask); err != nil {
		return err
	}
	s.cron.Start()
	log.Info(msg.GetMessage("forecast.cron.started", s.config.CronExpression, s.config.Location))
	return nil
}

// ExecuteScheduledTask runs one region check round under a fresh request id
func (s *ForecastScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()

	ctx := s.ctx
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	log.Info(msg.GetMessage("forecast.cron.start"), zap.String("request_id", requestID))
	if err := s.useCase.ScheduleAllRegions(ctx, requestID); err != nil {
		log.Error(msg.GetMessage("forecast.cron.failed"), zap.String("request_id", requestID), zap.Error(err))
		return
	}
	log.Info(msg.GetMessage("forecast.cron.end"), zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler
func (s *ForecastScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *ForecastScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *ForecastScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return time.Minute
}
