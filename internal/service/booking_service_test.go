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

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

const (
	bookingSelectCols = "id, user_id, room_id, booking_date, start_time, end_time, status, created_at, updated_at"
	invoiceSelectCols = "id, booking_id, user_id, amount_cents, status, created_at, due_date"
)

func newBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bookings := repository.NewBookingRepo(db)
	invoices := NewInvoiceService(repository.NewInvoiceRepo(db), repository.NewRoomRepo(db), 14)
	return NewBookingService(db, bookings, invoices), mock
}

func bookingRow(id, userID, roomID uint64, status string, start, end time.Time) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "user_id", "room_id", "booking_date", "start_time", "end_time", "status", "created_at", "updated_at"}).
		AddRow(id, userID, roomID, start, start, end, status, now, now)
}

func TestBookingCreateForcesOwnerAndDerivesInvoice(t *testing.T) {
	svc, mock := newBookingService(t)
	caller := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(uint64(42), uint64(5), start, start, end, model.BookingPending).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(bookingRow(7, 42, 5, model.BookingPending, start, end))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price_cents FROM rooms WHERE id=?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(uint32(2500)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices")).
		WithArgs(uint64(7), uint64(42), uint32(2500), model.InvoiceUnpaid, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+invoiceSelectCols+" FROM invoices WHERE id = ?")).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "user_id", "amount_cents", "status", "created_at", "due_date"}).
			AddRow(11, 7, 42, uint32(2500), model.InvoiceUnpaid, time.Now().UTC(), time.Now().UTC().AddDate(0, 0, 14)))
	mock.ExpectCommit()

	// Payload claims a different owner; the caller's identity must win.
	b := &model.Booking{UserID: 999, RoomID: 5, StartTime: start, EndTime: end}
	inv, err := svc.Create(context.Background(), caller, b)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), b.UserID)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, uint64(7), inv.BookingID)
	assert.Equal(t, uint64(42), inv.UserID)
	assert.Equal(t, uint32(2500), inv.AmountCents)
	assert.Equal(t, model.InvoiceUnpaid, inv.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateMissingRoomRollsBack(t *testing.T) {
	svc, mock := newBookingService(t)
	caller := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
		WillReturnRows(bookingRow(8, 42, 77, model.BookingPending, start, end))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price_cents FROM rooms WHERE id=?")).
		WithArgs(uint64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"price_cents"}))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), caller, &model.Booking{RoomID: 77, StartTime: start, EndTime: end})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependency))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateRejectsInvertedWindow(t *testing.T) {
	svc, _ := newBookingService(t)
	caller := auth.Identity{UserID: 1, Role: auth.RoleRegisteredUser}

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), caller, &model.Booking{
		RoomID: 1, StartTime: start, EndTime: start.Add(-time.Hour),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestBookingUpdatePreservesOwnerAndChecksPathID(t *testing.T) {
	svc, mock := newBookingService(t)
	admin := auth.Identity{UserID: 1, Role: auth.RoleAdministrator}

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// Body id differing from the path id fails before any query runs.
	_, err := svc.Update(context.Background(), admin, 3, &model.Booking{ID: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(bookingRow(3, 42, 5, model.BookingPending, start, end))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET")).
		WithArgs(uint64(42), uint64(5), start, start, end, model.BookingConfirmed, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(bookingRow(3, 42, 5, model.BookingConfirmed, start, end))

	// Admin confirms someone else's booking; the payload tries to steal
	// ownership and must not succeed.
	got, err := svc.Update(context.Background(), admin, 3, &model.Booking{
		UserID: 1, RoomID: 5, StartTime: start, EndTime: end, Status: model.BookingConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.UserID)
	assert.Equal(t, model.BookingConfirmed, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdateForbiddenForOtherUser(t *testing.T) {
	svc, mock := newBookingService(t)
	stranger := auth.Identity{UserID: 99, Role: auth.RoleRegisteredUser}

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(bookingRow(3, 42, 5, model.BookingPending, start, start.Add(time.Hour)))

	_, err := svc.Update(context.Background(), stranger, 3, &model.Booking{RoomID: 5, StartTime: start, EndTime: start.Add(time.Hour)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetMissingIsNotFoundForEveryone(t *testing.T) {
	svc, mock := newBookingService(t)
	stranger := auth.Identity{UserID: 99, Role: auth.RoleRegisteredUser}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + bookingSelectCols + " FROM bookings WHERE id = ?")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetByID(context.Background(), stranger, 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverlappingBookingsBothPersist(t *testing.T) {
	svc, mock := newBookingService(t)
	alice := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}
	bob := auth.Identity{UserID: 43, Role: auth.RoleRegisteredUser}

	start := time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC)

	expectCreate := func(bookingID, invoiceID int64, userID uint64, s, e time.Time) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
			WillReturnResult(sqlmock.NewResult(bookingID, 1))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
			WillReturnRows(bookingRow(uint64(bookingID), userID, 5, model.BookingPending, s, e))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT price_cents FROM rooms WHERE id=?")).
			WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(uint32(2500)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices")).
			WillReturnResult(sqlmock.NewResult(invoiceID, 1))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT "+invoiceSelectCols+" FROM invoices WHERE id = ?")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "user_id", "amount_cents", "status", "created_at", "due_date"}).
				AddRow(invoiceID, bookingID, userID, uint32(2500), model.InvoiceUnpaid, time.Now().UTC(), time.Now().UTC().AddDate(0, 0, 14)))
		mock.ExpectCommit()
	}

	// The same room, overlapping windows. There is no overlap check at
	// write time; double bookings are surfaced through the occupied
	// ranges view and resolved by staff.
	expectCreate(1, 1, 42, start, start.Add(2*time.Hour))
	_, err := svc.Create(context.Background(), alice, &model.Booking{
		RoomID: 5, StartTime: start, EndTime: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	expectCreate(2, 2, 43, start.Add(time.Hour), start.Add(3*time.Hour))
	_, err = svc.Create(context.Background(), bob, &model.Booking{
		RoomID: 5, StartTime: start.Add(time.Hour), EndTime: start.Add(3 * time.Hour),
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCancelKeepsRow(t *testing.T) {
	svc, mock := newBookingService(t)
	owner := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}

	start := time.Date(2026, 9, 3, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
		WithArgs(uint64(6)).
		WillReturnRows(bookingRow(6, 42, 5, model.BookingConfirmed, start, end))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET")).
		WithArgs(uint64(42), uint64(5), start, start, end, model.BookingCancelled, uint64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookingSelectCols+" FROM bookings WHERE id = ?")).
		WithArgs(uint64(6)).
		WillReturnRows(bookingRow(6, 42, 5, model.BookingCancelled, start, end))

	got, err := svc.Cancel(context.Background(), owner, 6)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
