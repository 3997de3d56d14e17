package api

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rainwatch/internal/domain/model/external"
	"rainwatch/pkg/log"
)

// ForecastCache is the part of redis.Cache the decorator needs
type ForecastCache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, loader func() (interface{}, error)) (bool, error)
}

// cachedWeatherGateway serves forecasts per coordinate from cache, falling
// back to the delegate on a miss or when the cache is unavailable.
type cachedWeatherGateway struct {
	delegate WeatherGateway
	cache    ForecastCache
}

// NewCachedWeatherGateway decorates a WeatherGateway with a cache. A nil
// cache returns the delegate unchanged.
func NewCachedWeatherGateway(delegate WeatherGateway, cache ForecastCache) WeatherGateway {
	if cache == nil {
		return delegate
	}
	return &cachedWeatherGateway{delegate: delegate, cache: cache}
}

func (c *cachedWeatherGateway) GetForecast(ctx context.Context, latitude, longitude float64) (*external.OpenWeatherForecastResponse, error) {
	key := fmt.Sprintf("%.4f:%.4f", latitude, longitude)

	var response external.OpenWeatherForecastResponse
	hit, err := c.cache.GetOrSet(ctx, key, &response, func() (interface{}, error) {
		return c.delegate.GetForecast(ctx, latitude, longitude)
	})
	if err != nil {
		return nil, err
	}

	log.Debug("forecast lookup", zap.String("coordinate", key), zap.Bool("cache_hit", hit))
	return &response, nil
}
