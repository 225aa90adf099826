// Package queue defines message payloads exchanged over the message
// broker plus the publisher and the background consumer for them.
package queue

// BookingCreatedEvent is published after a booking and its invoice are
// committed. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingCreatedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	RoomID        uint64 `json:"room_id"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	Status        string `json:"status"`
	InvoiceID     uint64 `json:"invoice_id"`
	AmountCents   uint32 `json:"amount_cents"`
	InvoiceStatus string `json:"invoice_status"`
	DueDate       string `json:"due_date"`
	CreatedAt     string `json:"created_at"`
}
