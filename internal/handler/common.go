// Package handler contains the Echo HTTP handlers. Each handler bundles
// its dependencies in a struct, binds and validates the request, calls
// into the service layer with a bounded context and maps service errors
// onto HTTP statuses.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/service"
)

// reqCtx derives a bounded context for one storage round trip.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// identityFrom rebuilds the verified identity placed into the context by
// the JWT middleware. An incomplete identity means the route was reached
// without passing authentication.
func identityFrom(c echo.Context) (auth.Identity, error) {
	uid, ok := c.Get("user_id").(uint64)
	if !ok {
		return auth.Identity{}, service.ErrUnauthenticated
	}
	roleName, ok := c.Get("role").(string)
	if !ok {
		return auth.Identity{}, service.ErrUnauthenticated
	}
	role, ok := auth.ParseRole(roleName)
	if !ok {
		return auth.Identity{}, service.ErrUnauthenticated
	}
	return auth.Identity{UserID: uid, Role: role}, nil
}

// serviceError converts the service error taxonomy to a JSON response.
// NotFound is checked before Forbidden upstream, so the mapping here can
// stay mechanical.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrDependency):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrValidation
	}
	return id, nil
}
