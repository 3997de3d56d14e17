package db

import (
	"context"
	"errors"

	"rainwatch/internal/domain/entity"
)

// ErrDuplicateDispatch is returned when a dispatch for the same region and
// qualifying date already exists.
var ErrDuplicateDispatch = errors.New("dispatch already recorded for region and date")

type DispatchGateway interface {
	EnsureSchema(ctx context.Context) error

	ExistsByRegionAndDate(ctx context.Context, region string, date entity.Date) (bool, error)
	Create(ctx context.Context, dispatch entity.AlertDispatch) (*entity.AlertDispatch, error)

	FindAll(ctx context.Context, offset int, limit int) ([]entity.AlertDispatch, error)
	CountAll(ctx context.Context) (int64, error)
}
