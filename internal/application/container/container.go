package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	gormdb "gorm.io/gorm"

	"rainwatch/configs"
	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/evaluator"
	"rainwatch/internal/domain/gateway/api"
	"rainwatch/internal/domain/gateway/cache"
	"rainwatch/internal/domain/gateway/db"
	"rainwatch/internal/domain/gateway/queue"
	"rainwatch/internal/domain/usecase/forecast"
	"rainwatch/internal/domain/usecase/health"
	"rainwatch/internal/domain/usecase/task"
	"rainwatch/internal/domain/usecase/tracking"
	"rainwatch/internal/infra/aws"
	"rainwatch/internal/infra/database"
	"rainwatch/internal/infra/database/gorm"
	"rainwatch/internal/infra/database/sqldb"
	infraredis "rainwatch/internal/infra/redis"
	"rainwatch/pkg/http"
	"rainwatch/pkg/log"
	"rainwatch/pkg/redis"
	"rainwatch/pkg/resource"
)

// Container holds the wired application. Optional infrastructure is nil when
// not configured: no database disables dedupe and tracking, no redis disables
// the scheduler lock, forecast cache and rate limiter, no queue checks regions inline.
type Container struct {
	Location  *time.Location
	QueueName string

	RedisClient *redis.Client
	SQSClient   *awssqs.Client
	QueueHealth *queue.SQSHealthGateway

	ForecastUseCase forecast.UseCase
	TaskUseCase     task.UseCase
	TrackingUseCase tracking.UseCase
	HealthUseCase   health.UseCase

	closers []func() error
}

// New wires every component from application properties and secrets
func New(ctx context.Context, secrets *configs.Secrets) (*Container, error) {
	c := &Container{QueueHealth: queue.NewSQSHealthGateway()}
	if err := c.wire(ctx, secrets); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) wire(ctx context.Context, secrets *configs.Secrets) error {
	location, err := time.LoadLocation(resource.GetStringOrDefault("app.forecast.timezone", "UTC"))
	if err != nil {
		return fmt.Errorf("invalid forecast timezone: %w", err)
	}
	c.Location = location

	regions, err := LoadRegions()
	if err != nil {
		return err
	}

	var (
		dbHealth        db.HealthDBGateway
		cacheHealth     cache.HealthGateway
		dispatchGateway db.DispatchGateway
		trackingGateway db.TrackingGateway
		forecastCache   api.ForecastCache
		limiter         api.Limiter
		queueSender     queue.Sender
	)

	if redisConfig := infraredis.ConfigFromProperties(); redisConfig != nil {
		client, err := redis.NewClient(redisConfig)
		if err != nil {
			return err
		}
		c.RedisClient = client
		c.closers = append(c.closers, client.Close)
		cacheHealth = cache.NewRedisHealthGateway(client)
		forecastCache = redis.NewCache(client, redis.NewCacheOptions(infraredis.ForecastCacheName))

		rateLimiter, err := redis.NewRateLimiter(client, "asana", redis.RateLimiterOptions{
			Limit:       resource.GetIntOrDefault("app.integration.asana.rate-limit", 150),
			Window:      resource.GetDurationOrDefault("app.integration.asana.rate-limit-window", time.Minute),
			WaitTimeout: 30 * time.Second,
			Namespace:   "rainwatch",
		})
		if err != nil {
			return err
		}
		limiter = rateLimiter
	} else {
		cacheHealth = cache.NewRedisHealthGateway(nil)
	}

	if dbConfig := database.ConfigFromProperties(); dbConfig.Enabled() {
		sqlDB, gormDB, err := openDatabases(ctx, dbConfig)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)

		dispatches := db.NewSQLDispatchGateway(sqlDB)
		if err := dispatches.EnsureSchema(ctx); err != nil {
			return err
		}
		trackingRows := db.NewGormTrackingGateway(gormDB)
		if err := trackingRows.Migrate(); err != nil {
			return err
		}

		dbHealth = db.NewSQLHealthDBGateway(sqlDB)
		dispatchGateway = dispatches
		trackingGateway = trackingRows
	} else {
		log.Warn("Database not configured, dispatch dedupe and completion tracking are disabled")
	}

	if queueName := resource.GetString("app.forecast.queue"); queueName != "" {
		awsConfig := aws.ConfigFromProperties()
		sdkConfig, err := aws.LoadConfig(ctx, awsConfig)
		if err != nil {
			return err
		}
		c.SQSClient = aws.NewSqsClient(sdkConfig, awsConfig.Endpoint)
		c.QueueName = queueName
		queueSender = aws.NewSQSSenderAdapter(c.SQSClient)
	}

	weatherGateway := api.NewWeatherGateway(
		resource.GetStringOrDefault("app.integration.openweather.base-url", "https://api.openweathermap.org"),
		secrets.OpenWeatherKey,
		vendorClientOptions("openweather"))
	if forecastCache != nil {
		weatherGateway = api.NewCachedWeatherGateway(weatherGateway, forecastCache)
	}

	taskGateway := api.NewTaskGateway(
		resource.GetStringOrDefault("app.integration.asana.base-url", "https://app.asana.com/api/1.0"),
		secrets.AsanaToken,
		limiter,
		vendorClientOptions("asana"))

	c.TaskUseCase = task.NewTaskUseCase(taskGateway, task.Config{
		ProjectID: secrets.ProjectID,
		SectionID: secrets.SectionID,
		Location:  location,
	})

	c.ForecastUseCase = forecast.NewForecastUseCase(forecast.Config{
		Regions:   regions,
		QueueName: c.QueueName,
		Location:  location,
	}, evaluator.New(resource.GetStringSlice("app.forecast.adverse-labels")...), weatherGateway, c.TaskUseCase, dispatchGateway, queueSender)

	if trackingGateway != nil {
		c.TrackingUseCase = tracking.NewTrackingUseCase(trackingGateway, c.TaskUseCase, nil)
	}

	c.HealthUseCase = health.NewHealthUseCase(dbHealth, c.QueueHealth, cacheHealth)
	return nil
}

func openDatabases(ctx context.Context, cfg database.Config) (*sql.DB, *gormdb.DB, error) {
	sqlDB, err := sqldb.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	gormDB, err := gorm.Open(cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return sqlDB, gormDB, nil
}

// vendorClientOptions are the outbound HTTP options shared by both vendors
func vendorClientOptions(name string) http.ClientOptions {
	return http.ClientOptions{
		ReadTimeout:        30 * time.Second,
		ConnectionTimeout:  10 * time.Second,
		Backoff:            http.DefaultBackoffConfig(),
		CircuitBreakerName: name,
		Logger:             http.NewZapHTTPLogger(name),
	}
}

// LoadRegions reads and validates app.forecast.regions
func LoadRegions() ([]entity.Region, error) {
	var regions []entity.Region
	if err := resource.UnmarshalKey("app.forecast.regions", &regions); err != nil {
		return nil, fmt.Errorf("failed to read regions: %w", err)
	}
	if len(regions) == 0 {
		return nil, errors.New("no regions configured")
	}

	validate := validator.New()
	seen := make(map[string]bool, len(regions))
	for _, region := range regions {
		if err := validate.Struct(region); err != nil {
			return nil, fmt.Errorf("invalid region %q: %w", region.Name, err)
		}
		if seen[region.Name] {
			return nil, fmt.Errorf("duplicate region %q", region.Name)
		}
		seen[region.Name] = true
	}
	return regions, nil
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Warn("Failed to close resource", zap.Error(err))
		}
	}
	c.closers = nil
}
