package api

import (
	"context"
	"fmt"
	"net/url"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model/external"
	"rainwatch/pkg/http"
)

// Limiter hands out permits for outbound calls
type Limiter interface {
	Acquire(ctx context.Context) error
}

// taskGatewayImpl implements the TaskGateway interface against Asana
type taskGatewayImpl struct {
	httpClient *http.Client
	limiter    Limiter
}

// NewTaskGateway creates a TaskGateway authenticated with a personal access
// token. limiter may be nil.
func NewTaskGateway(baseUrl string, token string, limiter Limiter, clientOptions http.ClientOptions) TaskGateway {
	headers := make(map[string]string, len(clientOptions.DefaultHeaders)+2)
	for k, v := range clientOptions.DefaultHeaders {
		headers[k] = v
	}
	headers["Authorization"] = "Bearer " + token
	headers["Accept"] = "application/json"
	clientOptions.DefaultHeaders = headers

	return &taskGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		limiter:    limiter,
	}
}

// createTaskBackoff disables retries for task creation: a 5xx or a dropped
// connection does not tell whether Asana already stored the task.
var createTaskBackoff = &http.BackoffConfig{MaxRetries: 0}

// CreateTask creates a task in a project. It is sent at most once.
func (g *taskGatewayImpl) CreateTask(ctx context.Context, projectID string, task entity.Task) (*entity.Task, error) {
	data := external.AsanaTaskData{
		Name:  task.Name,
		Notes: task.Notes,
	}
	if projectID != "" {
		data.Projects = []string{projectID}
	}
	if !task.DueOn.IsZero() {
		data.DueOn = task.DueOn.String()
	}

	successResp, err := g.execute(ctx, g.httpClient.Request().
		WithMethod(http.POST).
		WithPath("/tasks").
		WithBackoff(createTaskBackoff).
		WithBody(external.AsanaTaskRequest{Data: data}).
		WithSuccessResp(&external.AsanaTaskResponse{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return toTask(successResp.(*external.AsanaTaskResponse).Data), nil
}

// AddTaskToSection moves a task into a section
func (g *taskGatewayImpl) AddTaskToSection(ctx context.Context, sectionID string, taskGID string) error {
	_, err := g.execute(ctx, g.httpClient.Request().
		WithMethod(http.POST).
		WithPath(fmt.Sprintf("/sections/%s/addTask", url.PathEscape(sectionID))).
		WithBody(external.AsanaAddTaskRequest{Data: external.AsanaAddTaskData{Task: taskGID}}))
	if err != nil {
		return fmt.Errorf("failed to move task %s to section %s: %w", taskGID, sectionID, err)
	}
	return nil
}

// ListSections lists the sections of a project
func (g *taskGatewayImpl) ListSections(ctx context.Context, projectID string) ([]entity.Section, error) {
	successResp, err := g.execute(ctx, g.httpClient.Request().
		WithMethod(http.GET).
		WithPath(fmt.Sprintf("/projects/%s/sections", url.PathEscape(projectID))).
		WithSuccessResp(&external.AsanaSectionsResponse{}))
	if err != nil {
		return nil, fmt.Errorf("failed to list sections of project %s: %w", projectID, err)
	}

	response := successResp.(*external.AsanaSectionsResponse)
	sections := make([]entity.Section, 0, len(response.Data))
	for _, s := range response.Data {
		sections = append(sections, entity.Section{GID: s.GID, Name: s.Name})
	}
	return sections, nil
}

// GetTask reads a task
func (g *taskGatewayImpl) GetTask(ctx context.Context, taskGID string) (*entity.Task, error) {
	successResp, err := g.execute(ctx, g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("/tasks/"+url.PathEscape(taskGID)).
		WithQueryParams(map[string]string{"opt_fields": "name,notes,due_on,completed,permalink_url"}).
		WithSuccessResp(&external.AsanaTaskResponse{}))
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", taskGID, err)
	}

	return toTask(successResp.(*external.AsanaTaskResponse).Data), nil
}

// execute waits for a permit, runs the request and folds the Asana error body into the error
func (g *taskGatewayImpl) execute(ctx context.Context, request *http.Request) (any, error) {
	if g.limiter != nil {
		if err := g.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
	}

	successResp, errResp, _, err := request.
		WithContext(ctx).
		WithErrorResp(&external.AsanaErrorResponse{}).
		Execute()
	if err == nil {
		return successResp, nil
	}

	if errResp != nil {
		if message := errResp.(*external.AsanaErrorResponse).Message(); message != "" {
			return nil, fmt.Errorf("asana: %s: %w", message, err)
		}
	}
	return nil, fmt.Errorf("asana: %w", err)
}

func toTask(t external.AsanaTask) *entity.Task {
	task := &entity.Task{
		GID:       t.GID,
		Name:      t.Name,
		Notes:     t.Notes,
		Completed: t.Completed,
		URL:       t.PermalinkURL,
	}
	if due, err := entity.ParseDate(t.DueOn); err == nil {
		task.DueOn = due
	}
	return task
}
