package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rainwatch/internal/domain/entity"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

type SQLDispatchGateway struct {
	DB *sql.DB
}

var _ DispatchGateway = (*SQLDispatchGateway)(nil)

func NewSQLDispatchGateway(db *sql.DB) *SQLDispatchGateway {
	return &SQLDispatchGateway{DB: db}
}

func (gateway *SQLDispatchGateway) EnsureSchema(ctx context.Context) error {
	_, err := gateway.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS alert_dispatches (
			id              UUID PRIMARY KEY,
			region          TEXT NOT NULL,
			qualifying_date DATE NOT NULL,
			task_id         TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (region, qualifying_date)
		)`)
	return err
}

func (gateway *SQLDispatchGateway) ExistsByRegionAndDate(ctx context.Context, region string, date entity.Date) (bool, error) {
	var exists bool
	err := gateway.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alert_dispatches
			WHERE region = $1 AND qualifying_date = $2::date
		)`, region, date.String()).Scan(&exists)
	return exists, err
}

func (gateway *SQLDispatchGateway) Create(ctx context.Context, dispatch entity.AlertDispatch) (*entity.AlertDispatch, error) {
	if dispatch.ID == "" {
		dispatch.ID = uuid.NewString()
	}

	var createdAt time.Time
	err := gateway.DB.QueryRowContext(ctx, `
		INSERT INTO alert_dispatches (id, region, qualifying_date, task_id)
		VALUES ($1, $2, $3::date, $4)
		RETURNING created_at`,
		dispatch.ID, dispatch.Region, dispatch.QualifyingDate.String(), dispatch.TaskID).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateDispatch
		}
		return nil, err
	}

	dispatch.CreatedAt = createdAt
	return &dispatch, nil
}

func (gateway *SQLDispatchGateway) FindAll(ctx context.Context, offset int, limit int) (result []entity.AlertDispatch, err error) {
	rows, err := gateway.DB.QueryContext(ctx, `
		SELECT id, region, qualifying_date, task_id, created_at
		FROM alert_dispatches
		ORDER BY created_at DESC, id
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	results := make([]entity.AlertDispatch, 0)
	for rows.Next() {
		var d entity.AlertDispatch
		var qualifyingDate time.Time
		if err := rows.Scan(&d.ID, &d.Region, &qualifyingDate, &d.TaskID, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.QualifyingDate = entity.DateOf(qualifyingDate)
		results = append(results, d)
	}
	return results, rows.Err()
}

func (gateway *SQLDispatchGateway) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := gateway.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM alert_dispatches`).Scan(&count)
	return count, err
}
