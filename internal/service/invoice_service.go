package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// InvoiceService owns invoice derivation and the Unpaid -> Paid
// transition. Derivation never runs on its own: it is called by the
// booking service inside the booking's transaction, which is what keeps
// the one-invoice-per-booking rule airtight.
type InvoiceService struct {
	Invoices *repository.InvoiceRepo
	Rooms    *repository.RoomRepo
	DueDays  int
}

func NewInvoiceService(inv *repository.InvoiceRepo, rooms *repository.RoomRepo, dueDays int) *InvoiceService {
	return &InvoiceService{Invoices: inv, Rooms: rooms, DueDays: dueDays}
}

// DeriveInvoiceTx creates the single invoice for a freshly inserted
// booking inside the same transaction. The amount is the room's unit
// price at this moment; the invoice starts Unpaid with a due date
// DueDays from now. A missing room surfaces as a dependency error and
// rolls back the whole booking.
func (s *InvoiceService) DeriveInvoiceTx(ctx context.Context, tx *sql.Tx, b *model.Booking) (model.Invoice, error) {
	price, err := s.Rooms.GetPriceTx(ctx, tx, b.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Invoice{}, fmt.Errorf("%w: room %d does not exist", ErrDependency, b.RoomID)
		}
		return model.Invoice{}, fmt.Errorf("load room price: %w", err)
	}
	inv := model.Invoice{
		BookingID:   b.ID,
		UserID:      b.UserID,
		AmountCents: price,
		Status:      model.InvoiceUnpaid,
		DueDate:     time.Now().UTC().AddDate(0, 0, s.DueDays),
	}
	if err := s.Invoices.CreateTx(ctx, tx, &inv); err != nil {
		return model.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// MarkPaid flips an invoice to Paid. Administrators only. The call is
// not idempotent: marking an invoice that is missing or already paid
// fails, so a double payment is always visible to the caller.
func (s *InvoiceService) MarkPaid(ctx context.Context, id auth.Identity, invoiceID uint64) (model.Invoice, error) {
	if !auth.Authorize(id, nil, auth.RoleAdministrator) {
		return model.Invoice{}, fmt.Errorf("%w: only administrators record payments", ErrForbidden)
	}
	ok, err := s.Invoices.MarkPaid(ctx, invoiceID)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("mark invoice paid: %w", err)
	}
	if !ok {
		return model.Invoice{}, fmt.Errorf("%w: no unpaid invoice with id %d", ErrNotFound, invoiceID)
	}
	inv, err := s.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return model.Invoice{}, fmt.Errorf("reload invoice: %w", err)
	}
	return inv, nil
}

// GetByID returns one invoice. Non-admins may only see their own.
func (s *InvoiceService) GetByID(ctx context.Context, id auth.Identity, invoiceID uint64) (model.Invoice, error) {
	inv, err := s.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Invoice{}, fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
		}
		return model.Invoice{}, fmt.Errorf("load invoice: %w", err)
	}
	if !auth.Authorize(id, &inv.UserID, auth.RoleAdministrator, auth.RoleRegisteredUser) {
		return model.Invoice{}, fmt.Errorf("%w: invoice %d belongs to another user", ErrForbidden, invoiceID)
	}
	return inv, nil
}

// ListUnpaid returns every unpaid invoice. Administrators only.
func (s *InvoiceService) ListUnpaid(ctx context.Context, id auth.Identity) ([]model.Invoice, error) {
	if !auth.Authorize(id, nil, auth.RoleAdministrator) {
		return nil, fmt.Errorf("%w: unpaid listing is administrative", ErrForbidden)
	}
	return s.Invoices.ListUnpaid(ctx)
}

// ListForCaller returns all invoices for administrators and the
// caller's own invoices otherwise. The narrowing happens in the query,
// not by filtering a full listing afterwards.
func (s *InvoiceService) ListForCaller(ctx context.Context, id auth.Identity) ([]model.Invoice, error) {
	if id.IsAdmin() {
		return s.Invoices.ListAll(ctx)
	}
	return s.Invoices.ListByUser(ctx, id.UserID)
}
