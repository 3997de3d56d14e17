package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"rainwatch/internal/domain/evaluator"
	"rainwatch/internal/domain/usecase/forecast"
	"rainwatch/internal/domain/usecase/task"
	"rainwatch/internal/domain/usecase/tracking"
)

// errorStatus maps use case errors to HTTP status codes
func errorStatus(err error) int {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors),
		errors.Is(err, evaluator.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidTask),
		errors.Is(err, tracking.ErrInvalidRow):
		return http.StatusBadRequest
	case errors.Is(err, forecast.ErrRegionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(errorStatus(err), map[string]string{"error": err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}
