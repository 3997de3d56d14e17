package api

import (
	"context"

	"rainwatch/internal/domain/model/external"
)

// WeatherGateway defines the interface for forecast API calls
type WeatherGateway interface {
	// GetForecast returns the 5 day / 3 hour forecast for a coordinate
	GetForecast(ctx context.Context, latitude, longitude float64) (*external.OpenWeatherForecastResponse, error)
}
