package cache

import (
	"context"
	"time"

	"rainwatch/internal/domain/model"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
}

// Pinger is implemented by *redis.Client
type Pinger interface {
	Ping(ctx context.Context) error
}

type RedisHealthGateway struct {
	client Pinger
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

// NewRedisHealthGateway reports UNKNOWN when client is nil, since the cache is optional
func NewRedisHealthGateway(client Pinger) *RedisHealthGateway {
	return &RedisHealthGateway{client: client}
}

func (gateway *RedisHealthGateway) Health() model.ComponentHealthStatus {
	if gateway.client == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "cache not configured"},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := gateway.client.Ping(ctx); err != nil {
		return model.Down(err)
	}
	return model.Up()
}
