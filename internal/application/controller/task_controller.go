package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model"
	"rainwatch/internal/domain/usecase/task"
)

type TaskController struct {
	api     *echo.Group
	useCase task.UseCase
}

func NewTaskController(api *echo.Group, useCase task.UseCase) *TaskController {
	return &TaskController{api: api, useCase: useCase}
}

// InitTaskRoutes initializes task routes
func (controller *TaskController) InitTaskRoutes() {
	controller.api.POST("/tasks", controller.Create)
	controller.api.POST("/tasks/test", controller.CreateTest)
	controller.api.GET("/tasks/sections", controller.ListSections)
}

// Create godoc
// @Summary Create a task
// @Description Create a task in the configured project and move it to the configured section
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body model.CreateTaskDTO true "Task data"
// @Success 201 {object} entity.Task "Created task"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tasks [post]
func (controller *TaskController) Create(c echo.Context) error {
	var dto model.CreateTaskDTO
	if err := c.Bind(&dto); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&dto); err != nil {
		return errorJSON(c, err)
	}

	var dueOn entity.Date
	if dto.DueOn != nil {
		dueOn = *dto.DueOn
	}

	created, err := controller.useCase.CreateTask(c.Request().Context(), dto.Name, dto.Notes, dueOn)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// CreateTest godoc
// @Summary Create the test task
// @Description Create a fixed smoke-test task to validate credentials and project
// @Tags tasks
// @Produce json
// @Success 201 {object} entity.Task "Created task"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tasks/test [post]
func (controller *TaskController) CreateTest(c echo.Context) error {
	created, err := controller.useCase.CreateTestTask(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListSections godoc
// @Summary List project sections
// @Description List the sections of the configured project
// @Tags tasks
// @Produce json
// @Success 200 {array} entity.Section "Sections"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tasks/sections [get]
func (controller *TaskController) ListSections(c echo.Context) error {
	sections, err := controller.useCase.ListSections(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, sections)
}
