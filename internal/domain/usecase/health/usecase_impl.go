package health

import (
	"rainwatch/internal/domain/gateway/cache"
	"rainwatch/internal/domain/gateway/db"
	"rainwatch/internal/domain/gateway/queue"
	"rainwatch/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	queueGateway queue.HealthGateway
	cacheGateway cache.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, queueGateway queue.HealthGateway, cacheGateway cache.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		queueGateway: queueGateway,
		cacheGateway: cacheGateway,
	}
}

// CheckHealth is DOWN when any component is DOWN. UNKNOWN marks an optional
// component that is not configured and does not affect the overall status.
func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	response := model.HealthResponse{
		Status:   model.StatusUp,
		Database: componentHealth(useCase.dbGateway),
		Queue:    componentHealth(useCase.queueGateway),
		Cache:    componentHealth(useCase.cacheGateway),
	}

	for _, component := range []model.ComponentHealthStatus{response.Database, response.Queue, response.Cache} {
		if component.Status == model.StatusDown {
			response.Status = model.StatusDown
		}
	}
	return response
}

type healthChecker interface {
	Health() model.ComponentHealthStatus
}

func componentHealth(checker healthChecker) model.ComponentHealthStatus {
	if checker == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "not configured"},
		}
	}
	return checker.Health()
}
