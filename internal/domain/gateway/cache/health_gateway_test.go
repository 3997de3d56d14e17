package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"rainwatch/internal/domain/model"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestRedisHealthGateway(t *testing.T) {
	up := NewRedisHealthGateway(pingerFunc(func(context.Context) error { return nil })).Health()
	assert.Equal(t, model.StatusUp, up.Status)

	down := NewRedisHealthGateway(pingerFunc(func(context.Context) error { return errors.New("connection refused") })).Health()
	assert.Equal(t, model.StatusDown, down.Status)
	assert.Equal(t, "connection refused", down.Details["message"])

	assert.Equal(t, model.StatusUnknown, NewRedisHealthGateway(nil).Health().Status)
}
