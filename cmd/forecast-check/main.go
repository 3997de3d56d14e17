package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rainwatch/configs"
	"rainwatch/internal/application/container"
	"rainwatch/pkg/log"
	"rainwatch/pkg/resource"
)

// forecast-check runs one region check round and exits. Regions are checked
// inline even when a queue is configured.
func main() {
	listSections := flag.Bool("list-sections", false, "print the project's sections and exit")
	testTask := flag.Bool("test-task", false, "create the smoke-test task and exit")
	region := flag.String("region", "", "check a single region by name")
	flag.Parse()

	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	secrets, err := configs.LoadSecrets()
	if err != nil {
		log.Fatal("Missing credentials", zap.Error(err))
	}

	resource.Set("app.forecast.queue", "")
	app, err := container.New(ctx, secrets)
	if err != nil {
		log.Fatal("Failed to initialize", zap.Error(err))
	}
	defer app.Close()

	if err := run(ctx, app, *listSections, *testTask, *region); err != nil {
		log.Error("forecast-check failed", zap.Error(err))
		app.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, app *container.Container, listSections, testTask bool, regionName string) error {
	switch {
	case listSections:
		sections, err := app.TaskUseCase.ListSections(ctx)
		if err != nil {
			return err
		}
		for _, section := range sections {
			fmt.Printf("%s\t%s\n", section.GID, section.Name)
		}
		return nil

	case testTask:
		created, err := app.TaskUseCase.CreateTestTask(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("created test task %s %s\n", created.GID, created.URL)
		return nil

	case regionName != "":
		region, err := app.ForecastUseCase.FindRegion(regionName)
		if err != nil {
			return err
		}
		result, err := app.ForecastUseCase.CheckRegion(ctx, *region, uuid.New().String())
		if err != nil {
			return err
		}
		if result.QualifyingDate == nil {
			fmt.Printf("%s: no qualifying day\n", result.Region)
		} else {
			fmt.Printf("%s: %s task=%s duplicate=%t\n", result.Region, result.QualifyingDate, result.TaskID, result.Duplicate)
		}
		return nil

	default:
		return app.ForecastUseCase.ScheduleAllRegions(ctx, uuid.New().String())
	}
}
