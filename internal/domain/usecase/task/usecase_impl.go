package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/gateway/api"
	"rainwatch/pkg/log"
	"rainwatch/pkg/msg"
)

// ErrInvalidTask is returned for a task without a name
var ErrInvalidTask = errors.New("invalid task")

// Config identifies where tasks are created
type Config struct {
	ProjectID string
	// SectionID is optional; tasks stay in the project's default section when empty
	SectionID string
	Location  *time.Location
	// Now overrides the clock, mainly for tests
	Now func() time.Time
}

type taskUseCase struct {
	gateway api.TaskGateway
	config  Config
}

func NewTaskUseCase(gateway api.TaskGateway, config Config) UseCase {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &taskUseCase{gateway: gateway, config: config}
}

func (uc *taskUseCase) CreateTask(ctx context.Context, name string, notes string, dueOn entity.Date) (*entity.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.Join(ErrInvalidTask, errors.New(msg.GetMessage("task.error.empty-name")))
	}
	if dueOn.IsZero() {
		dueOn = entity.DateOf(uc.config.Now().In(uc.config.Location))
	}

	created, err := uc.gateway.CreateTask(ctx, uc.config.ProjectID, entity.Task{
		Name:  name,
		Notes: notes,
		DueOn: dueOn,
	})
	if err != nil {
		return nil, err
	}
	log.Info(msg.GetMessage("task.log.created"), zap.String("task_id", created.GID), zap.String("name", name))

	if uc.config.SectionID != "" {
		// A failed move leaves the task where Asana put it.
		if err := uc.gateway.AddTaskToSection(ctx, uc.config.SectionID, created.GID); err != nil {
			log.Error(msg.GetMessage("task.log.move-failed"),
				zap.String("task_id", created.GID),
				zap.String("section_id", uc.config.SectionID),
				zap.Error(err))
		} else {
			log.Info(msg.GetMessage("task.log.moved"), zap.String("task_id", created.GID))
		}
	}

	return created, nil
}

func (uc *taskUseCase) CreateTestTask(ctx context.Context) (*entity.Task, error) {
	return uc.CreateTask(ctx, msg.GetMessage("task.test.name"), msg.GetMessage("task.test.notes"), entity.Date{})
}

func (uc *taskUseCase) ListSections(ctx context.Context) ([]entity.Section, error) {
	return uc.gateway.ListSections(ctx, uc.config.ProjectID)
}

func (uc *taskUseCase) GetTask(ctx context.Context, taskGID string) (*entity.Task, error) {
	if strings.TrimSpace(taskGID) == "" {
		return nil, errors.Join(ErrInvalidTask, errors.New(msg.GetMessage("task.error.empty-id")))
	}
	return uc.gateway.GetTask(ctx, taskGID)
}
