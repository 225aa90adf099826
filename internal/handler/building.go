package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// BuildingHandler serves the public building catalogue and the admin
// CRUD surface.
type BuildingHandler struct {
	Buildings *repository.BuildingRepo
}

func NewBuildingHandler(b *repository.BuildingRepo) *BuildingHandler {
	return &BuildingHandler{Buildings: b}
}

// List returns buildings. Public.
func (h *BuildingHandler) List(c echo.Context) error {
	limit, offset := 0, 0
	if v := c.QueryParam("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	buildings, err := h.Buildings.ListAll(ctx, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list buildings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"buildings": buildings})
}

// Get returns one building. Public.
func (h *BuildingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Buildings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load building failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// Create adds a building. Admin only.
func (h *BuildingHandler) Create(c echo.Context) error {
	var b model.Building
	if err := c.Bind(&b); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if b.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Buildings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create building failed"})
	}
	return c.JSON(http.StatusCreated, b)
}

// Update rewrites a building. Admin only.
func (h *BuildingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	var b model.Building
	if err := c.Bind(&b); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	b.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load building failed"})
	}
	if err := h.Buildings.Update(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update building failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// Delete removes a building. Admin only.
func (h *BuildingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Buildings.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load building failed"})
	}
	if err := h.Buildings.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete building failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
