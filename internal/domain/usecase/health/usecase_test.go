package health

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"rainwatch/internal/domain/gateway/queue"
	"rainwatch/internal/domain/model"
)

type staticHealth struct {
	status model.ComponentHealthStatus
}

func (s staticHealth) Health() model.ComponentHealthStatus { return s.status }

type staticQueueHealth struct {
	staticHealth
}

func (staticQueueHealth) RegisterWorker(string, queue.WorkerHealthChecker) {}
func (staticQueueHealth) UnregisterWorker(string)                          {}

func unknown() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUnknown}
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name     string
		database model.ComponentHealthStatus
		queue    model.ComponentHealthStatus
		cache    model.ComponentHealthStatus
		want     model.HealthStatus
	}{
		{"all up", model.Up(), model.Up(), model.Up(), model.StatusUp},
		{"database down", model.Down(errors.New("refused")), model.Up(), model.Up(), model.StatusDown},
		{"queue down", model.Up(), model.Down(errors.New("no workers")), model.Up(), model.StatusDown},
		{"cache down", model.Up(), model.Up(), model.Down(errors.New("timeout")), model.StatusDown},
		{"cache not configured", model.Up(), model.Up(), unknown(), model.StatusUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewHealthUseCase(staticHealth{tt.database}, staticQueueHealth{staticHealth{tt.queue}}, staticHealth{tt.cache})

			response := useCase.CheckHealth()

			assert.Equal(t, tt.want, response.Status)
			assert.Equal(t, tt.cache, response.Cache)
		})
	}
}

func TestCheckHealth_MissingGateways(t *testing.T) {
	response := NewHealthUseCase(nil, nil, nil).CheckHealth()

	assert.Equal(t, model.StatusUp, response.Status)
	assert.Equal(t, model.StatusUnknown, response.Database.Status)
	assert.Equal(t, model.StatusUnknown, response.Queue.Status)
}
