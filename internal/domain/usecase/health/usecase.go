package health

import "rainwatch/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}
