package model

// Room is administrator-owned reference data describing a bookable room
// inside a building. PriceCents is the unit price charged per booking and
// is the source for invoice amounts.
type Room struct {
	ID            uint64  `json:"id"`                   // rooms.id
	BuildingID    uint64  `json:"building_id"`          // rooms.building_id
	RoomNumber    string  `json:"room_number"`          // rooms.room_number
	Capacity      uint32  `json:"capacity"`             // rooms.capacity
	HasProjector  bool    `json:"has_projector"`        // rooms.has_projector
	HasWhiteboard bool    `json:"has_whiteboard"`       // rooms.has_whiteboard
	Description   string  `json:"description"`          // rooms.description
	ImagePath     *string `json:"image_path,omitempty"` // rooms.image_path (nullable)
	PriceCents    uint32  `json:"price_cents"`          // rooms.price_cents
}
