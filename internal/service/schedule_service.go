package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/room-reservation/internal/repository"
)

// ScheduleService answers availability questions about rooms. The view
// it exposes is intentionally public: occupied ranges carry no owner or
// booking details, only time windows.
type ScheduleService struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
}

func NewScheduleService(rooms *repository.RoomRepo, bookings *repository.BookingRepo) *ScheduleService {
	return &ScheduleService{Rooms: rooms, Bookings: bookings}
}

// OccupiedRanges returns the occupied windows of a room overlapping
// [from, to), sorted ascending by start. A booking that begins before
// the window but runs into it is reported too. Cancelled bookings still
// occupy their slot in this view; the range disappears only when the
// booking is deleted.
func (s *ScheduleService) OccupiedRanges(ctx context.Context, roomID uint64, from, to time.Time) ([]repository.OccupiedRange, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrValidation)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: to must be after from", ErrValidation)
	}
	if _, err := s.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return nil, fmt.Errorf("load room: %w", err)
	}
	ranges, err := s.Bookings.ListRangesByRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load occupied ranges: %w", err)
	}
	return ranges, nil
}
