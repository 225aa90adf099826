package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// BookingService owns the booking lifecycle. Creating a booking also
// derives its invoice inside one transaction, so either both rows exist
// or neither does. Overlapping bookings of the same room are accepted;
// double bookings are resolved by staff through the occupied-ranges
// view rather than rejected at write time.
type BookingService struct {
	DB       *sql.DB
	Bookings *repository.BookingRepo
	Invoices *InvoiceService
}

func NewBookingService(db *sql.DB, bookings *repository.BookingRepo, invoices *InvoiceService) *BookingService {
	return &BookingService{DB: db, Bookings: bookings, Invoices: invoices}
}

func validBookingStatus(s string) bool {
	switch s {
	case model.BookingPending, model.BookingConfirmed, model.BookingCancelled:
		return true
	}
	return false
}

func validateBooking(b *model.Booking) error {
	if b.RoomID == 0 {
		return fmt.Errorf("%w: room_id is required", ErrValidation)
	}
	if b.StartTime.IsZero() || b.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}
	if !b.EndTime.After(b.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
	}
	if b.Status != "" && !validBookingStatus(b.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, b.Status)
	}
	return nil
}

// Create inserts a booking for the calling identity and derives its
// invoice in the same transaction. The owner is always the caller: any
// user_id in the input is discarded, for administrators too. A missing
// room rolls everything back and nothing is persisted.
func (s *BookingService) Create(ctx context.Context, id auth.Identity, b *model.Booking) (model.Invoice, error) {
	b.UserID = id.UserID
	if b.Status == "" {
		b.Status = model.BookingPending
	}
	if err := validateBooking(b); err != nil {
		return model.Invoice{}, err
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = b.StartTime
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("begin booking tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Bookings.CreateTx(ctx, tx, b); err != nil {
		return model.Invoice{}, fmt.Errorf("create booking: %w", err)
	}
	inv, err := s.Invoices.DeriveInvoiceTx(ctx, tx, b)
	if err != nil {
		return model.Invoice{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Invoice{}, fmt.Errorf("commit booking tx: %w", err)
	}
	committed = true
	return inv, nil
}

// GetByID returns one booking. Non-admins may only see their own.
// Existence is checked before ownership so a missing booking is
// reported the same way to everyone.
func (s *BookingService) GetByID(ctx context.Context, id auth.Identity, bookingID uint64) (model.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return model.Booking{}, fmt.Errorf("load booking: %w", err)
	}
	if !auth.Authorize(id, &b.UserID, auth.RoleAdministrator, auth.RoleRegisteredUser) {
		return model.Booking{}, fmt.Errorf("%w: booking %d belongs to another user", ErrForbidden, bookingID)
	}
	return b, nil
}

// Update rewrites a booking's fields. The path id wins: a payload
// carrying a different id is rejected outright. The persisted owner is
// carried forward no matter what the payload says, so a booking can
// never change hands through an update.
func (s *BookingService) Update(ctx context.Context, id auth.Identity, bookingID uint64, in *model.Booking) (model.Booking, error) {
	if in.ID != 0 && in.ID != bookingID {
		return model.Booking{}, fmt.Errorf("%w: body id %d does not match path id %d", ErrValidation, in.ID, bookingID)
	}
	existing, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return model.Booking{}, fmt.Errorf("load booking: %w", err)
	}
	if !auth.Authorize(id, &existing.UserID, auth.RoleAdministrator, auth.RoleRegisteredUser) {
		return model.Booking{}, fmt.Errorf("%w: booking %d belongs to another user", ErrForbidden, bookingID)
	}
	in.ID = bookingID
	in.UserID = existing.UserID
	if in.Status == "" {
		in.Status = existing.Status
	}
	if err := validateBooking(in); err != nil {
		return model.Booking{}, err
	}
	if in.BookingDate.IsZero() {
		in.BookingDate = existing.BookingDate
	}
	if err := s.Bookings.Update(ctx, in); err != nil {
		return model.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	return s.Bookings.GetByID(ctx, bookingID)
}

// Cancel marks a booking Cancelled without deleting it, so the slot
// still appears in occupied ranges and the invoice stays intact.
func (s *BookingService) Cancel(ctx context.Context, id auth.Identity, bookingID uint64) (model.Booking, error) {
	existing, err := s.GetByID(ctx, id, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	existing.Status = model.BookingCancelled
	if err := s.Bookings.Update(ctx, &existing); err != nil {
		return model.Booking{}, fmt.Errorf("cancel booking: %w", err)
	}
	return s.Bookings.GetByID(ctx, bookingID)
}

// Delete removes a booking and its invoice. Same visibility rules as
// GetByID.
func (s *BookingService) Delete(ctx context.Context, id auth.Identity, bookingID uint64) error {
	if _, err := s.GetByID(ctx, id, bookingID); err != nil {
		return err
	}
	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// ListForCaller returns all bookings for administrators and the
// caller's own otherwise.
func (s *BookingService) ListForCaller(ctx context.Context, id auth.Identity) ([]model.Booking, error) {
	if id.IsAdmin() {
		return s.Bookings.ListAll(ctx)
	}
	return s.Bookings.ListByUser(ctx, id.UserID)
}
