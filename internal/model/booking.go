package model

import "time"

// Booking statuses. New bookings default to Pending; there is no automatic
// confirmation step, an administrator or the owner moves the status.
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
)

// Booking records a user's reservation of a room for a time window on a
// given date. UserID is always the identity that created the booking; it
// is assigned by the server and preserved across updates, never taken
// from client input.
type Booking struct {
	ID          uint64    `json:"id"`           // bookings.id
	UserID      uint64    `json:"user_id"`      // bookings.user_id (owner)
	RoomID      uint64    `json:"room_id"`      // bookings.room_id
	BookingDate time.Time `json:"booking_date"` // bookings.booking_date (date only)
	StartTime   time.Time `json:"start_time"`   // bookings.start_time (UTC)
	EndTime     time.Time `json:"end_time"`     // bookings.end_time (UTC)
	Status      string    `json:"status"`       // bookings.status
	CreatedAt   time.Time `json:"created_at"`   // bookings.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // bookings.updated_at
}
