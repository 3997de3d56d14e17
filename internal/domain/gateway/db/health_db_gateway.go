package db

import "rainwatch/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
