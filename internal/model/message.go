package model

import "time"

// Message is a plain store-and-forward note between two users. There is
// no read/unread workflow; messages are written once and listed.
type Message struct {
	ID         uint64    `json:"id"`          // messages.id
	SenderID   uint64    `json:"sender_id"`   // messages.sender_id
	ReceiverID uint64    `json:"receiver_id"` // messages.receiver_id
	Subject    string    `json:"subject"`     // messages.subject
	Body       string    `json:"body"`        // messages.body
	SentAt     time.Time `json:"sent_at"`     // messages.sent_at
}
