package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/repository"
)

func newScheduleService(t *testing.T) (*ScheduleService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewScheduleService(repository.NewRoomRepo(db), repository.NewBookingRepo(db)), mock
}

func roomRow(id uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "building_id", "room_number", "capacity", "has_projector", "has_whiteboard", "description", "image_path", "price_cents"}).
		AddRow(id, 1, "101", 8, true, true, "meeting room", nil, uint32(2500))
}

func TestOccupiedRangesSortedAndIncludesCancelled(t *testing.T) {
	svc, mock := newScheduleService(t)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	a := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, building_id, room_number")).
		WithArgs(uint64(5)).
		WillReturnRows(roomRow(5))
	// Overlap predicate args: start_time < to AND end_time > from. Row
	// order mirrors the ORDER BY; one of the two comes from a cancelled
	// booking and is still listed.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_time, end_time FROM bookings")).
		WithArgs(uint64(5), to, from).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).
			AddRow(a, a.Add(time.Hour)).
			AddRow(b, b.Add(2*time.Hour)))

	ranges, err := svc.OccupiedRanges(context.Background(), 5, from, to)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.True(t, ranges[0].Start.Before(ranges[1].Start))
	assert.Equal(t, a, ranges[0].Start)
	assert.Equal(t, b.Add(2*time.Hour), ranges[1].End)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupiedRangesIncludeBookingStartedBeforeWindow(t *testing.T) {
	svc, mock := newScheduleService(t)

	from := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	to := from.Add(8 * time.Hour)
	// Starts an hour before the window but runs into it.
	early := from.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, building_id, room_number")).
		WithArgs(uint64(5)).
		WillReturnRows(roomRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_time, end_time FROM bookings")).
		WithArgs(uint64(5), to, from).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "end_time"}).
			AddRow(early, from.Add(time.Hour)))

	ranges, err := svc.OccupiedRanges(context.Background(), 5, from, to)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, early, ranges[0].Start)
	assert.True(t, ranges[0].End.After(from))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupiedRangesUnknownRoom(t *testing.T) {
	svc, mock := newScheduleService(t)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, building_id, room_number")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.OccupiedRanges(context.Background(), 404, from, from.AddDate(0, 0, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupiedRangesRejectsInvertedWindow(t *testing.T) {
	svc, _ := newScheduleService(t)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.OccupiedRanges(context.Background(), 5, from, from)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}
