package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"atelier/internal/model"
)

// GetExceptionByDate returns the override for a date, ErrNotFound when the
// date has none.
func (db *DB) GetExceptionByDate(ctx context.Context, date string) (*model.Exception, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, date, is_closed, schedule, created_at, updated_at
		FROM temporary_hours
		WHERE date = ?
		LIMIT 1`,
		date,
	)
	exc, err := scanException(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get exception %s: %w", date, err)
	}
	return exc, nil
}

// ListExceptions returns all overrides within [from, to], ordered by date.
func (db *DB) ListExceptions(ctx context.Context, from, to string) ([]model.Exception, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, is_closed, schedule, created_at, updated_at
		FROM temporary_hours
		WHERE date >= ? AND date <= ?
		ORDER BY date`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list exceptions: %w", err)
	}
	defer rows.Close()

	var out []model.Exception
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *exc)
	}
	return out, rows.Err()
}

// UpsertException creates or replaces the override for its date.
func (db *DB) UpsertException(ctx context.Context, e *model.Exception) error {
	var schedJSON any
	if !e.IsClosed {
		data, err := json.Marshal(e.Schedule)
		if err != nil {
			return fmt.Errorf("encode schedule: %w", err)
		}
		schedJSON = string(data)
	}

	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO temporary_hours (date, is_closed, schedule, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			is_closed = excluded.is_closed,
			schedule = excluded.schedule,
			updated_at = excluded.updated_at`,
		e.Date, e.IsClosed, schedJSON, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert exception %s: %w", e.Date, err)
	}
	if id, err := res.LastInsertId(); err == nil && e.ID == 0 {
		e.ID = id
	}
	return nil
}

// DeleteExceptionByDate removes the override, restoring the default hours.
func (db *DB) DeleteExceptionByDate(ctx context.Context, date string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM temporary_hours WHERE date = ?", date)
	if err != nil {
		return fmt.Errorf("delete exception %s: %w", date, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanException(r rowScanner) (*model.Exception, error) {
	var e model.Exception
	var schedJSON sql.NullString
	if err := r.Scan(&e.ID, &e.Date, &e.IsClosed, &schedJSON, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if schedJSON.Valid && schedJSON.String != "" {
		if err := json.Unmarshal([]byte(schedJSON.String), &e.Schedule); err != nil {
			return nil, fmt.Errorf("decode schedule for %s: %w", e.Date, err)
		}
	}
	return &e, nil
}
