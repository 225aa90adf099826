package model

import "time"

// Invoice statuses. The transition is one-directional: Unpaid -> Paid.
// A paid invoice never reverts.
const (
	InvoiceUnpaid = "Unpaid"
	InvoicePaid   = "Paid"
)

// Invoice is derived exactly once from each booking at creation time,
// inside the same transaction as the booking insert. UserID duplicates
// the booking owner's for fast per-user filtering.
type Invoice struct {
	ID          uint64    `json:"id"`           // invoices.id
	BookingID   uint64    `json:"booking_id"`   // invoices.booking_id (1-1 with bookings)
	UserID      uint64    `json:"user_id"`      // invoices.user_id (owner, denormalized)
	AmountCents uint32    `json:"amount_cents"` // invoices.amount_cents (room price at booking time)
	Status      string    `json:"status"`       // invoices.status
	CreatedAt   time.Time `json:"created_at"`   // invoices.created_at
	DueDate     time.Time `json:"due_date"`     // invoices.due_date
}
