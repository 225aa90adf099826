package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// BookingRepo provides CRUD operations for bookings. Creation happens
// inside a caller-owned transaction because the matching invoice must be
// written in the same unit of work. All timestamps are stored in UTC.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingCols = "id, user_id, room_id, booking_date, start_time, end_time, status, created_at, updated_at"

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.BookingDate,
		&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID plus DB-default fields on
// the provided record. The caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, room_id, booking_date, start_time, end_time, status) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.RoomID, b.BookingDate, b.StartTime, b.EndTime, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	*b, err = scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
	return err
}

// GetByID retrieves a booking by its ID. sql.ErrNoRows is returned when
// no such booking exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id = ? LIMIT 1", id))
}

// Update persists the mutable fields of a booking. The owner column is
// written from the struct, so callers are responsible for carrying the
// persisted owner forward.
func (r *BookingRepo) Update(ctx context.Context, b *model.Booking) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET user_id=?, room_id=?, booking_date=?, start_time=?, end_time=?, status=? WHERE id=?`,
		b.UserID, b.RoomID, b.BookingDate, b.StartTime, b.EndTime, b.Status, b.ID)
	return err
}

// Delete removes a booking and its invoice in one transaction. Deleting
// an already-absent row is not an error once existence has been checked
// by the caller.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM invoices WHERE booking_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingCols+" FROM bookings ORDER BY created_at DESC")
}

// ListByUser returns the bookings owned by one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingCols+" FROM bookings WHERE user_id = ? ORDER BY created_at DESC", userID)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// OccupiedRange is a (start, end) pair reported for availability display.
type OccupiedRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ListRangesByRoom returns the occupied time ranges of a room that
// overlap [from, to), sorted ascending by start time. The overlap
// predicate keeps a booking that starts before the window but still
// occupies part of it. Ranges are reported for bookings of every
// status; cancelled bookings are not excluded.
func (r *BookingRepo) ListRangesByRoom(ctx context.Context, roomID uint64, from, to time.Time) ([]OccupiedRange, error) {
	const q = `SELECT start_time, end_time FROM bookings
	           WHERE room_id = ? AND start_time < ? AND end_time > ?
	           ORDER BY start_time ASC, end_time ASC`
	rows, err := r.DB.QueryContext(ctx, q, roomID, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ranges := make([]OccupiedRange, 0)
	for rows.Next() {
		var or OccupiedRange
		if err := rows.Scan(&or.Start, &or.End); err != nil {
			return nil, err
		}
		ranges = append(ranges, or)
	}
	return ranges, rows.Err()
}
