package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/service"
)

// anonymousListLimit caps public room listings for callers without a
// session. Signed-in users see everything.
const anonymousListLimit = 10

// RoomHandler serves the public room catalogue, the occupied-ranges view
// and the admin CRUD surface.
type RoomHandler struct {
	Rooms    *repository.RoomRepo
	Schedule *service.ScheduleService
}

func NewRoomHandler(rooms *repository.RoomRepo, schedule *service.ScheduleService) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Schedule: schedule}
}

// List returns the room catalogue. Anonymous callers get at most
// anonymousListLimit rows.
func (h *RoomHandler) List(c echo.Context) error {
	limit, offset := 0, 0
	if v := c.QueryParam("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}
	if _, ok := c.Get("user_id").(uint64); !ok {
		if limit <= 0 || limit > anonymousListLimit {
			limit = anonymousListLimit
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rooms, err := h.Rooms.ListAll(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// Get returns one room. Public.
func (h *RoomHandler) Get(c echo.Context) error {
	roomID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// OccupiedRanges returns the occupied windows of a room between the
// from and to query parameters (RFC 3339). Public: the response carries
// time windows only, no booking details.
func (h *RoomHandler) OccupiedRanges(c echo.Context) error {
	roomID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	from, err1 := time.Parse(time.RFC3339, c.QueryParam("from"))
	to, err2 := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to must be RFC 3339 timestamps"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ranges, err := h.Schedule.OccupiedRanges(ctx, roomID, from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": roomID, "occupied": ranges})
}

// Create adds a room. Admin only (enforced by route middleware).
func (h *RoomHandler) Create(c echo.Context) error {
	var room model.Room
	if err := c.Bind(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if room.BuildingID == 0 || room.RoomNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "building_id and room_number required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Rooms.Create(ctx, &room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, room)
}

// Update rewrites a room. Admin only.
func (h *RoomHandler) Update(c echo.Context) error {
	roomID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	var room model.Room
	if err := c.Bind(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	room.ID = roomID

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	if err := h.Rooms.Update(ctx, &room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// Delete removes a room. Admin only.
func (h *RoomHandler) Delete(c echo.Context) error {
	roomID, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	if err := h.Rooms.Delete(ctx, roomID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
