package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// InvoiceRepo persists invoices. An invoice is created exactly once per
// booking, inside the same transaction as the booking insert.
type InvoiceRepo struct{ DB *sql.DB }

func NewInvoiceRepo(db *sql.DB) *InvoiceRepo { return &InvoiceRepo{DB: db} }

const invoiceCols = "id, booking_id, user_id, amount_cents, status, created_at, due_date"

func scanInvoice(row interface{ Scan(...any) error }) (model.Invoice, error) {
	var inv model.Invoice
	err := row.Scan(&inv.ID, &inv.BookingID, &inv.UserID, &inv.AmountCents,
		&inv.Status, &inv.CreatedAt, &inv.DueDate)
	return inv, err
}

// CreateTx inserts an invoice within an existing transaction and
// populates the generated ID plus DB-default fields.
func (r *InvoiceRepo) CreateTx(ctx context.Context, tx *sql.Tx, inv *model.Invoice) error {
	const q = `INSERT INTO invoices (booking_id, user_id, amount_cents, status, due_date) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, inv.BookingID, inv.UserID, inv.AmountCents, inv.Status, inv.DueDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = uint64(id)
	const sel = `SELECT ` + invoiceCols + ` FROM invoices WHERE id = ?`
	*inv, err = scanInvoice(tx.QueryRowContext(ctx, sel, inv.ID))
	return err
}

// GetByID retrieves an invoice by its ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uint64) (model.Invoice, error) {
	return scanInvoice(r.DB.QueryRowContext(ctx,
		"SELECT "+invoiceCols+" FROM invoices WHERE id = ? LIMIT 1", id))
}

// GetByBookingID retrieves the invoice derived for one booking.
func (r *InvoiceRepo) GetByBookingID(ctx context.Context, bookingID uint64) (model.Invoice, error) {
	return scanInvoice(r.DB.QueryRowContext(ctx,
		"SELECT "+invoiceCols+" FROM invoices WHERE booking_id = ? LIMIT 1", bookingID))
}

// MarkPaid flips an invoice from Unpaid to Paid. The guard lives in the
// WHERE clause: the update matches only while the invoice is still
// Unpaid, so a second call reports false instead of rewriting the row.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE invoices SET status='Paid' WHERE id=? AND status='Unpaid'", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListUnpaid returns all invoices still awaiting payment, oldest first.
func (r *InvoiceRepo) ListUnpaid(ctx context.Context) ([]model.Invoice, error) {
	return r.list(ctx, "SELECT "+invoiceCols+" FROM invoices WHERE status='Unpaid' ORDER BY created_at ASC")
}

// ListByUser returns the invoices belonging to one user, newest first.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Invoice, error) {
	return r.list(ctx, "SELECT "+invoiceCols+" FROM invoices WHERE user_id = ? ORDER BY created_at DESC", userID)
}

// ListAll returns every invoice, newest first.
func (r *InvoiceRepo) ListAll(ctx context.Context) ([]model.Invoice, error) {
	return r.list(ctx, "SELECT "+invoiceCols+" FROM invoices ORDER BY created_at DESC")
}

// ListOverdue returns unpaid invoices whose due date has passed as of
// the supplied instant. Used by the daily reminder job.
func (r *InvoiceRepo) ListOverdue(ctx context.Context, now time.Time) ([]model.Invoice, error) {
	return r.list(ctx,
		"SELECT "+invoiceCols+" FROM invoices WHERE status='Unpaid' AND due_date < ? ORDER BY due_date ASC", now)
}

func (r *InvoiceRepo) list(ctx context.Context, q string, args ...any) ([]model.Invoice, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invoices := make([]model.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
