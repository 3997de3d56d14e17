package controller

import (
	"context"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rainwatch/internal/application/middleware"
	"rainwatch/internal/domain/model"
	"rainwatch/internal/domain/usecase/forecast"
	"rainwatch/pkg/log"
	"rainwatch/pkg/util/numberutils"
)

type ForecastController struct {
	api     *echo.Group
	useCase forecast.UseCase
	async   func(func())
}

func NewForecastController(api *echo.Group, useCase forecast.UseCase) *ForecastController {
	return &ForecastController{api: api, useCase: useCase, async: func(f func()) { go f() }}
}

// InitForecastRoutes initializes forecast routes
func (controller *ForecastController) InitForecastRoutes() {
	controller.api.POST("/forecast/evaluate", controller.Evaluate)
	controller.api.GET("/forecast/regions", controller.ListRegions)
	controller.api.GET("/forecast/regions/preview", controller.PreviewAllRegions)
	controller.api.GET("/forecast/regions/:name", controller.PreviewRegion)
	controller.api.GET("/forecast/schedule", controller.Schedule)
	controller.api.GET("/forecast/dispatches", controller.ListDispatches)
}

// Evaluate godoc
// @Summary Evaluate a forecast
// @Description Find the earliest day after tomorrow without adverse weather in the posted samples
// @Tags forecast
// @Accept json
// @Produce json
// @Param forecast body model.EvaluateForecastDTO true "Samples and reference instant"
// @Success 200 {object} model.EvaluationResponse "Evaluation result"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /forecast/evaluate [post]
func (controller *ForecastController) Evaluate(c echo.Context) error {
	var dto model.EvaluateForecastDTO
	if err := c.Bind(&dto); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&dto); err != nil {
		return errorJSON(c, err)
	}

	response, err := controller.useCase.Evaluate(dto.Samples, *dto.ReferenceNow, dto.AdverseLabels)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// ListRegions godoc
// @Summary List regions
// @Description List the regions checked by the scheduler
// @Tags forecast
// @Produce json
// @Success 200 {array} entity.Region "Configured regions"
// @Router /forecast/regions [get]
func (controller *ForecastController) ListRegions(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.ListRegions())
}

// PreviewRegion godoc
// @Summary Preview a region
// @Description Fetch a region's forecast and evaluate it without creating a task
// @Tags forecast
// @Produce json
// @Param name path string true "Region name"
// @Success 200 {object} model.EvaluationResponse "Evaluation result"
// @Failure 404 {object} map[string]string "Region not found"
// @Failure 500 {object} map[string]string "Forecast unavailable"
// @Router /forecast/regions/{name} [get]
func (controller *ForecastController) PreviewRegion(c echo.Context) error {
	region, err := controller.useCase.FindRegion(c.Param("name"))
	if err != nil {
		return errorJSON(c, err)
	}

	response, err := controller.useCase.EvaluateRegion(c.Request().Context(), *region)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// PreviewAllRegions godoc
// @Summary Preview every region
// @Description Evaluate all regions in parallel without creating tasks
// @Tags forecast
// @Produce json
// @Success 200 {array} model.RegionPreview "One preview per region"
// @Router /forecast/regions/preview [get]
func (controller *ForecastController) PreviewAllRegions(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.EvaluateAllRegions(c.Request().Context()))
}

// Schedule godoc
// @Summary Trigger the region check
// @Description Start a region check round in the background
// @Tags forecast
// @Produce json
// @Success 202 {object} map[string]string "Request id of the round"
// @Router /forecast/schedule [get]
func (controller *ForecastController) Schedule(c echo.Context) error {
	requestID := middleware.RequestID(c)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx := context.WithoutCancel(c.Request().Context())

	controller.async(func() {
		if err := controller.useCase.ScheduleAllRegions(ctx, requestID); err != nil {
			log.Error("Triggered region check failed", zap.String("request_id", requestID), zap.Error(err))
		}
	})

	return c.JSON(http.StatusAccepted, map[string]string{"requestId": requestID})
}

// ListDispatches godoc
// @Summary List dispatched alerts
// @Description Tasks created per region and qualifying day, newest first
// @Tags forecast
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.Page[entity.AlertDispatch] "Paginated dispatches"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /forecast/dispatches [get]
func (controller *ForecastController) ListDispatches(c echo.Context) error {
	page, size := pagination(c)

	dispatches, err := controller.useCase.ListDispatches(c.Request().Context(), page, size)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, dispatches)
}

// pagination reads page and size, clamped to sane bounds. page*size always
// fits an int32 offset.
func pagination(c echo.Context) (int, int) {
	size := numberutils.ClampInt(numberutils.ToIntWithDefault(c.QueryParam("size"), 10), 1, 100)
	page := numberutils.ClampInt(numberutils.ToIntWithDefault(c.QueryParam("page"), 0), 0, math.MaxInt32/size)
	return page, size
}
