package api

import (
	"context"
	"fmt"
	"strconv"

	"rainwatch/internal/domain/model/external"
	"rainwatch/pkg/http"
)

// weatherGatewayImpl implements the WeatherGateway interface against OpenWeather
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
	units      string
	lang       string
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(baseUrl string, apiKey string, clientOptions http.ClientOptions) WeatherGateway {
	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		apiKey:     apiKey,
		units:      "metric",
		lang:       "pt_br",
	}
}

// GetForecast gets the forecast for a coordinate
func (w *weatherGatewayImpl) GetForecast(ctx context.Context, latitude, longitude float64) (*external.OpenWeatherForecastResponse, error) {
	successResp, errResp, _, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/data/2.5/forecast").
		WithQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(latitude, 'f', -1, 64),
			"lon":   strconv.FormatFloat(longitude, 'f', -1, 64),
			"appid": w.apiKey,
			"units": w.units,
			"lang":  w.lang,
		}).
		WithSuccessResp(&external.OpenWeatherForecastResponse{}).
		WithErrorResp(&external.OpenWeatherErrorResponse{}).
		Execute()

	if err == nil {
		response := successResp.(*external.OpenWeatherForecastResponse)
		return response, nil
	}

	if errResp != nil {
		errorResponse := errResp.(*external.OpenWeatherErrorResponse)
		if errorResponse.Message != "" {
			return nil, fmt.Errorf("openweather: %s: %w", errorResponse.Message, err)
		}
	}

	return nil, fmt.Errorf("openweather: %w", err)
}
