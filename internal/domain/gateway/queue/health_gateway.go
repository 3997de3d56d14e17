package queue

import (
	"rainwatch/internal/domain/model"
	"rainwatch/pkg/sqs"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker WorkerHealthChecker)
	UnregisterWorker(name string)
}

// WorkerHealthChecker is implemented by *sqs.Worker
type WorkerHealthChecker interface {
	HealthCheck() sqs.WorkerHealth
}
