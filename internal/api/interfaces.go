package api

import (
	"context"

	"atelier/internal/model"
)

// ExceptionStore is the temporary-hours record store the API consumes.
type ExceptionStore interface {
	GetExceptionByDate(ctx context.Context, date string) (*model.Exception, error)
	ListExceptions(ctx context.Context, from, to string) ([]model.Exception, error)
	UpsertException(ctx context.Context, e *model.Exception) error
	DeleteExceptionByDate(ctx context.Context, date string) error
}

// BookingStore is the reservation record store the API consumes.
type BookingStore interface {
	ListBookingsByDate(ctx context.Context, date string) ([]model.Booking, error)
	ListBookingsRange(ctx context.Context, from, to string) ([]model.Booking, error)
	InsertBooking(ctx context.Context, b *model.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*model.Booking, error)
	DeleteBookingByID(ctx context.Context, id int64) error
	DeleteBookingByDateTime(ctx context.Context, date, clock string) error
}
