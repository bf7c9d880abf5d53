package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/model"
)

// ListBookingsByDate returns all reservations and blocks for a date,
// ordered by time. Times are normalized to HH:MM on the way out.
func (db *DB) ListBookingsByDate(ctx context.Context, date string) ([]model.Booking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, time, first_name, last_name, phone, kind, created_at
		FROM reservations
		WHERE date = ?
		ORDER BY time`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", date, err)
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		var kind string
		if err := rows.Scan(&b.ID, &b.Date, &b.Time, &b.FirstName, &b.LastName, &b.Phone, &kind, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Time = model.NormalizeClock(b.Time)
		b.Kind = model.KindFromLegacy(kind, b.LastName)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListBookingsRange returns reservations within [from, to] for reporting.
func (db *DB) ListBookingsRange(ctx context.Context, from, to string) ([]model.Booking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, time, first_name, last_name, phone, kind, created_at
		FROM reservations
		WHERE date >= ? AND date <= ?
		ORDER BY date, time`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings %s..%s: %w", from, to, err)
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		var kind string
		if err := rows.Scan(&b.ID, &b.Date, &b.Time, &b.FirstName, &b.LastName, &b.Phone, &kind, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Time = model.NormalizeClock(b.Time)
		b.Kind = model.KindFromLegacy(kind, b.LastName)
		out = append(out, b)
	}
	return out, rows.Err()
}

// InsertBooking stores a reservation or block. Times gain the trailing
// seconds the legacy store format carries. A slot already occupied maps
// to ErrSlotTaken.
func (db *DB) InsertBooking(ctx context.Context, b *model.Booking) error {
	if b.Kind == "" {
		b.Kind = model.BookingClient
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO reservations (date, time, first_name, last_name, phone, kind)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.Date, model.StoreClock(b.Time), b.FirstName, b.LastName, b.Phone, string(b.Kind),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		b.ID = id
	}
	return nil
}

// GetBookingByID fetches one record, ErrNotFound on zero rows.
func (db *DB) GetBookingByID(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	var kind string
	err := db.QueryRowContext(ctx, `
		SELECT id, date, time, first_name, last_name, phone, kind, created_at
		FROM reservations
		WHERE id = ?`,
		id,
	).Scan(&b.ID, &b.Date, &b.Time, &b.FirstName, &b.LastName, &b.Phone, &kind, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	b.Time = model.NormalizeClock(b.Time)
	b.Kind = model.KindFromLegacy(kind, b.LastName)
	return &b, nil
}

// DeleteBookingByID cancels a reservation or lifts a block.
func (db *DB) DeleteBookingByID(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBookingByDateTime is the fallback the old admin panel used when a
// delete by id failed: match on the slot instead. Both stored time forms
// are matched.
func (db *DB) DeleteBookingByDateTime(ctx context.Context, date, clock string) error {
	short := model.NormalizeClock(clock)
	res, err := db.ExecContext(ctx,
		"DELETE FROM reservations WHERE date = ? AND time IN (?, ?)",
		date, short, model.StoreClock(short),
	)
	if err != nil {
		return fmt.Errorf("delete booking %s %s: %w", date, clock, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
