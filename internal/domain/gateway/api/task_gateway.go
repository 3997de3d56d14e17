package api

import (
	"context"

	"rainwatch/internal/domain/entity"
)

// TaskGateway defines the interface for task tracker calls
type TaskGateway interface {
	// CreateTask creates task in the given project and returns it with its GID
	CreateTask(ctx context.Context, projectID string, task entity.Task) (*entity.Task, error)

	// AddTaskToSection moves a task into a section of its project
	AddTaskToSection(ctx context.Context, sectionID string, taskGID string) error

	// ListSections lists the sections of a project
	ListSections(ctx context.Context, projectID string) ([]entity.Section, error)

	// GetTask reads a task by GID
	GetTask(ctx context.Context, taskGID string) (*entity.Task, error)
}
