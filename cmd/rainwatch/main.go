package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"rainwatch/configs"
	"rainwatch/docs"
	"rainwatch/internal/application/container"
	"rainwatch/internal/application/controller"
	"rainwatch/internal/application/middleware"
	"rainwatch/internal/application/processor"
	"rainwatch/internal/application/schedule"
	"rainwatch/pkg/log"
	"rainwatch/pkg/msg"
	"rainwatch/pkg/resource"
	"rainwatch/pkg/sqs"
)

// @title Rainwatch API
// @version 1.0
// @description Rain forecast alerts for store regions.
// @BasePath /rainwatch
func main() {
	defer log.Sync()
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	secrets, err := configs.LoadSecrets()
	if err != nil {
		log.Fatal("Missing credentials", zap.Error(err))
	}

	// Init infra
	app, err := container.New(ctx, secrets)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	contextPath := resource.GetStringOrDefault("app.server.context-path", configs.Env.ContextPath)
	docs.SwaggerInfo.BasePath = contextPath

	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	middleware.SetupValidator(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	api := e.Group(contextPath)

	// Init Controller and Routes
	controller.NewHealthController(api, app.HealthUseCase).InitHealthRoutes()
	controller.NewForecastController(api, app.ForecastUseCase).InitForecastRoutes()
	controller.NewTaskController(api, app.TaskUseCase).InitTaskRoutes()
	if app.TrackingUseCase != nil {
		controller.NewTrackingController(api, app.TrackingUseCase).InitTrackingRoutes()
	}

	// Init Worker
	if app.SQSClient != nil {
		worker, err := sqs.NewWorker(ctx, app.SQSClient, app.QueueName, processor.NewRegionProcessor(app.ForecastUseCase), &sqs.WorkerConfig{
			PoolSize: resource.GetIntOrDefault("app.forecast.worker-pool-size", 4),
			LogLevel: sqs.ErrorLevel,
		})
		if err != nil {
			log.Fatal("Failed to create region worker", zap.Error(err))
		}
		app.QueueHealth.RegisterWorker("regions", worker)
		go worker.Start(ctx)
	}

	// Init Schedule
	forecastScheduler := schedule.NewForecastScheduler(app.ForecastUseCase, app.RedisClient, schedule.ForecastSchedulerConfig{
		CronExpression:  resource.GetStringOrDefault("app.forecast.cron", "0 9 * * *"),
		Location:        app.Location,
		LockTTL:         resource.GetDuration("app.forecast.lock-ttl"),
		RefreshInterval: resource.GetDuration("app.forecast.lock-refresh-interval"),
		RunTimeout:      resource.GetDuration("app.forecast.run-timeout"),
	})
	if err := forecastScheduler.InitForecastScheduleTasks(ctx); err != nil {
		log.Fatal("Failed to start forecast scheduler", zap.Error(err))
	}

	if app.TrackingUseCase != nil {
		trackingScheduler, err := schedule.NewTrackingScheduler(app.TrackingUseCase,
			resource.GetDurationOrDefault("app.tracking.sync-interval", 5*time.Minute), nil)
		if err != nil {
			log.Fatal("Failed to create tracking scheduler", zap.Error(err))
		}
		if err := trackingScheduler.InitTrackingScheduleTasks(ctx); err != nil {
			log.Fatal("Failed to start tracking scheduler", zap.Error(err))
		}
		defer func() { _ = trackingScheduler.Stop() }()
	}

	// Start Routes
	port := resource.GetStringOrDefault("app.server.port", "8080")
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", port))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		resource.GetDurationOrDefault("app.server.shutdown-timeout", 15*time.Second))
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down server", zap.Error(err))
	}
	forecastScheduler.Stop()
}
