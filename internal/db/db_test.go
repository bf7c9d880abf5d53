package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/model"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestBookingLifecycle(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	b := &model.Booking{
		Date:      "2026-10-03",
		Time:      "14:30",
		FirstName: "Marie",
		LastName:  "Dupont",
		Phone:     "0612345678",
	}
	require.NoError(t, database.InsertBooking(ctx, b))
	assert.NotZero(t, b.ID)
	assert.Equal(t, model.BookingClient, b.Kind, "kind defaults to client")

	got, err := database.GetBookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "14:30", got.Time, "stored seconds are stripped on read")
	assert.Equal(t, "Marie Dupont", got.DisplayName())

	list, err := database.ListBookingsByDate(ctx, "2026-10-03")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, database.DeleteBookingByID(ctx, b.ID))
	_, err = database.GetBookingByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, database.DeleteBookingByID(ctx, b.ID), ErrNotFound)
}

func TestInsertBookingSlotTaken(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	first := &model.Booking{Date: "2026-10-03", Time: "14:30", FirstName: "Marie", LastName: "Dupont", Phone: "0612345678"}
	require.NoError(t, database.InsertBooking(ctx, first))

	second := &model.Booking{Date: "2026-10-03", Time: "14:30", FirstName: "Paul", LastName: "Martin", Phone: "0698765432"}
	assert.ErrorIs(t, database.InsertBooking(ctx, second), ErrSlotTaken)

	// A different time on the same date is fine.
	second.Time = "15:00"
	assert.NoError(t, database.InsertBooking(ctx, second))
}

func TestAdminBlockRoundTrip(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	block := model.NewAdminBlock("2026-10-03", "18:00")
	require.NoError(t, database.InsertBooking(ctx, block))

	list, err := database.ListBookingsByDate(ctx, "2026-10-03")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.BookingAdminBlock, list[0].Kind)
}

func TestLegacyBlockRowsRecoverKind(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	// Rows written by the old admin panel carried no kind tag and stored
	// times with seconds.
	_, err := database.ExecContext(ctx, `
		INSERT INTO reservations (date, time, first_name, last_name, phone, kind)
		VALUES ('2026-10-03', '18:00:00', 'ADMIN', 'BLOCKED', '0000000000', '')`)
	require.NoError(t, err)

	list, err := database.ListBookingsByDate(ctx, "2026-10-03")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.BookingAdminBlock, list[0].Kind)
	assert.Equal(t, "18:00", list[0].Time)
}

func TestDeleteBookingByDateTimeMatchesBothForms(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	b := &model.Booking{Date: "2026-10-03", Time: "14:30", FirstName: "Marie", LastName: "Dupont", Phone: "0612345678"}
	require.NoError(t, database.InsertBooking(ctx, b))

	// The store keeps "14:30:00"; a delete phrased without seconds must
	// still hit the row.
	require.NoError(t, database.DeleteBookingByDateTime(ctx, "2026-10-03", "14:30"))
	assert.ErrorIs(t, database.DeleteBookingByDateTime(ctx, "2026-10-03", "14:30"), ErrNotFound)
}

func TestListBookingsRange(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	for _, row := range []struct{ date, clock string }{
		{"2026-10-01", "18:00"},
		{"2026-10-03", "14:30"},
		{"2026-10-03", "11:00"},
		{"2026-10-10", "18:00"},
	} {
		b := &model.Booking{Date: row.date, Time: row.clock, FirstName: "A", LastName: "B", Phone: "0600000000"}
		require.NoError(t, database.InsertBooking(ctx, b))
	}

	list, err := database.ListBookingsRange(ctx, "2026-10-01", "2026-10-03")
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Ordered by date then time.
	assert.Equal(t, "2026-10-01", list[0].Date)
	assert.Equal(t, "11:00", list[1].Time)
	assert.Equal(t, "14:30", list[2].Time)
}

func TestExceptionUpsertAndFetch(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	_, err := database.GetExceptionByDate(ctx, "2026-10-03")
	assert.ErrorIs(t, err, ErrNotFound)

	exc := &model.Exception{
		Date:     "2026-10-03",
		Schedule: model.Schedule{{Start: 9, End: 12}},
	}
	require.NoError(t, database.UpsertException(ctx, exc))
	assert.NotZero(t, exc.ID)

	got, err := database.GetExceptionByDate(ctx, "2026-10-03")
	require.NoError(t, err)
	assert.False(t, got.IsClosed)
	assert.Equal(t, model.Schedule{{Start: 9, End: 12}}, got.Schedule)

	// Upsert again with a closed day: schedule is dropped.
	require.NoError(t, database.UpsertException(ctx, &model.Exception{Date: "2026-10-03", IsClosed: true}))
	got, err = database.GetExceptionByDate(ctx, "2026-10-03")
	require.NoError(t, err)
	assert.True(t, got.IsClosed)
	assert.Empty(t, got.Schedule)

	list, err := database.ListExceptions(ctx, "2026-10-01", "2026-10-31")
	require.NoError(t, err)
	assert.Len(t, list, 1, "one row per date, replaced not duplicated")
}

func TestDeleteException(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	require.NoError(t, database.UpsertException(ctx, &model.Exception{Date: "2026-10-03", IsClosed: true}))
	require.NoError(t, database.DeleteExceptionByDate(ctx, "2026-10-03"))
	assert.ErrorIs(t, database.DeleteExceptionByDate(ctx, "2026-10-03"), ErrNotFound)

	_, err := database.GetExceptionByDate(ctx, "2026-10-03")
	assert.ErrorIs(t, err, ErrNotFound)
}
