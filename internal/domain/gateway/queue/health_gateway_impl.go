package queue

import (
	"sort"
	"strconv"
	"sync"

	"rainwatch/internal/domain/model"
	"rainwatch/pkg/sqs"
)

var _ HealthGateway = (*SQSHealthGateway)(nil)

// SQSHealthGateway reports the queue component as the combined state of the
// registered SQS workers. Any DOWN worker makes the component DOWN.
type SQSHealthGateway struct {
	mu      sync.RWMutex
	workers map[string]WorkerHealthChecker
}

func NewSQSHealthGateway() *SQSHealthGateway {
	return &SQSHealthGateway{workers: make(map[string]WorkerHealthChecker)}
}

func (gateway *SQSHealthGateway) RegisterWorker(name string, worker WorkerHealthChecker) {
	gateway.mu.Lock()
	gateway.workers[name] = worker
	gateway.mu.Unlock()
}

func (gateway *SQSHealthGateway) UnregisterWorker(name string) {
	gateway.mu.Lock()
	delete(gateway.workers, name)
	gateway.mu.Unlock()
}

func (gateway *SQSHealthGateway) Health() model.ComponentHealthStatus {
	gateway.mu.RLock()
	defer gateway.mu.RUnlock()

	if len(gateway.workers) == 0 {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "no region worker registered", "workers_count": "0"},
		}
	}

	names := make([]string, 0, len(gateway.workers))
	for name := range gateway.workers {
		names = append(names, name)
	}
	sort.Strings(names)

	status := model.StatusUp
	details := map[string]string{"workers_count": strconv.Itoa(len(names))}
	down := 0
	for _, name := range names {
		snapshot := gateway.workers[name].HealthCheck()
		details[name+"_status"] = string(snapshot.Status)
		if snapshot.Status != sqs.StatusUp {
			down++
			status = model.StatusDown
		}
		for key, value := range snapshot.Details {
			details[name+"_"+key] = value
		}
	}
	details["workers_down"] = strconv.Itoa(down)

	return model.ComponentHealthStatus{Status: status, Details: details}
}
