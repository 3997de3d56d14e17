package task

import (
	"context"

	"rainwatch/internal/domain/entity"
)

type UseCase interface {
	// CreateTask creates a task in the configured project and moves it to the
	// configured section. A zero dueOn means today.
	CreateTask(ctx context.Context, name string, notes string, dueOn entity.Date) (*entity.Task, error)

	// CreateTestTask creates the smoke-test task used to validate credentials
	CreateTestTask(ctx context.Context) (*entity.Task, error)

	// ListSections lists the sections of the configured project
	ListSections(ctx context.Context) ([]entity.Section, error)

	// GetTask reads a task by GID
	GetTask(ctx context.Context, taskGID string) (*entity.Task, error)
}
