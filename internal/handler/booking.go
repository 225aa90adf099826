package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/service"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(b *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: b}
}

type bookingCreateReq struct {
	RoomID      uint64    `json:"room_id"`
	BookingDate time.Time `json:"booking_date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

type bookingResp struct {
	Booking model.Booking  `json:"booking"`
	Invoice *model.Invoice `json:"invoice,omitempty"`
}

// Create books a room for the caller and returns the booking together
// with its freshly derived invoice. A booking.created event is published
// after the commit; a broker outage is logged, not surfaced.
func (h *BookingHandler) Create(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	var req bookingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b := model.Booking{
		RoomID:      req.RoomID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
	}
	inv, err := h.Bookings.Create(ctx, id, &b)
	if err != nil {
		return serviceError(c, err)
	}

	if err := queue.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:     b.ID,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		StartsAt:      b.StartTime.Format(time.RFC3339),
		EndsAt:        b.EndTime.Format(time.RFC3339),
		Status:        b.Status,
		InvoiceID:     inv.ID,
		AmountCents:   inv.AmountCents,
		InvoiceStatus: inv.Status,
		DueDate:       inv.DueDate.Format(time.RFC3339),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}); err != nil {
		log.Printf("booking: publish booking.created failed for booking %d: %v", b.ID, err)
	}

	return c.JSON(http.StatusCreated, bookingResp{Booking: b, Invoice: &inv})
}

// List returns the caller's bookings, or every booking for admins.
func (h *BookingHandler) List(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	bookings, err := h.Bookings.ListForCaller(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Get returns one booking.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	bookingID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id, bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, bookingResp{Booking: b})
}

// Update rewrites a booking.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	bookingID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	var in model.Booking
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.Update(ctx, id, bookingID, &in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, bookingResp{Booking: b})
}

// Cancel marks a booking cancelled without removing it.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	bookingID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.Cancel(ctx, id, bookingID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, bookingResp{Booking: b})
}

// Delete removes a booking and its invoice.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	bookingID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id, bookingID); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
