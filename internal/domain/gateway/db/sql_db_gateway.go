package db

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"rainwatch/internal/domain/model"
)

type SQLHealthDBGateway struct {
	DB *sql.DB
}

var _ HealthDBGateway = (*SQLHealthDBGateway)(nil)

func NewSQLHealthDBGateway(db *sql.DB) *SQLHealthDBGateway {
	return &SQLHealthDBGateway{DB: db}
}

func (gateway *SQLHealthDBGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := gateway.DB.PingContext(ctx); err != nil {
		return model.Down(err)
	}

	stats := gateway.DB.Stats()
	status := model.Up()
	status.Details["open_connections"] = strconv.Itoa(stats.OpenConnections)
	status.Details["in_use"] = strconv.Itoa(stats.InUse)
	return status
}
