package controller

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rainwatch/internal/application/middleware"
	"rainwatch/internal/domain/model"
	"rainwatch/internal/domain/usecase/tracking"
	"rainwatch/pkg/log"
)

type TrackingController struct {
	api     *echo.Group
	useCase tracking.UseCase
	async   func(func())
}

func NewTrackingController(api *echo.Group, useCase tracking.UseCase) *TrackingController {
	return &TrackingController{api: api, useCase: useCase, async: func(f func()) { go f() }}
}

// InitTrackingRoutes initializes tracking routes
func (controller *TrackingController) InitTrackingRoutes() {
	controller.api.POST("/tracking", controller.Register)
	controller.api.GET("/tracking", controller.FindAll)
	controller.api.GET("/tracking/sync", controller.Sync)
}

// Register godoc
// @Summary Register a submission
// @Description Store a tracking row and create its task
// @Tags tracking
// @Accept json
// @Produce json
// @Param row body model.CreateTrackingRowDTO true "Submission"
// @Success 201 {object} entity.TrackingRow "Stored row"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking [post]
func (controller *TrackingController) Register(c echo.Context) error {
	var dto model.CreateTrackingRowDTO
	if err := c.Bind(&dto); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&dto); err != nil {
		return errorJSON(c, err)
	}

	row, err := controller.useCase.RegisterSubmission(c.Request().Context(), dto)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// FindAll godoc
// @Summary List tracking rows
// @Description Paginated tracking rows
// @Tags tracking
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.Page[entity.TrackingRow] "Paginated rows"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tracking [get]
func (controller *TrackingController) FindAll(c echo.Context) error {
	page, size := pagination(c)

	rows, err := controller.useCase.FindAll(c.Request().Context(), page, size)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Sync godoc
// @Summary Sync completions
// @Description Start a completion sync in the background
// @Tags tracking
// @Produce json
// @Success 202 {object} map[string]string "Request id of the sync"
// @Router /tracking/sync [get]
func (controller *TrackingController) Sync(c echo.Context) error {
	requestID := middleware.RequestID(c)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx := context.WithoutCancel(c.Request().Context())

	controller.async(func() {
		if _, err := controller.useCase.SyncCompletions(ctx, requestID); err != nil {
			log.Error("Triggered completion sync failed", zap.String("request_id", requestID), zap.Error(err))
		}
	})

	return c.JSON(http.StatusAccepted, map[string]string{"requestId": requestID})
}
