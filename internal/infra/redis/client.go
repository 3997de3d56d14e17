package redis

import (
	"time"

	"rainwatch/pkg/redis"
	"rainwatch/pkg/resource"
)

// ForecastCacheName is the cache holding OpenWeather responses
const ForecastCacheName = "forecast"

// ConfigFromProperties reads app.redis.* properties. It returns nil when no
// host is configured, which disables the lock, cache and rate limiter.
func ConfigFromProperties() *redis.Config {
	host := resource.GetString("app.redis.host")
	if host == "" {
		return nil
	}

	return redis.NewRedisConfig().
		WithHost(host).
		WithPort(resource.GetIntOrDefault("app.redis.port", 6379)).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetIntOrDefault("app.redis.database", 0)).
		WithCacheTTL(ForecastCacheName, resource.GetDurationOrDefault("app.forecast.cache-ttl", 30*time.Minute))
}
