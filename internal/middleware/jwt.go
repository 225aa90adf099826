// Package middleware contains reusable Echo middleware: JWT
// verification, role gating, Redis response caching and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func parseAccessToken(secret, raw string) (jwt.MapClaims, bool) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	return claims, ok
}

func setIdentity(c echo.Context, claims jwt.MapClaims) {
	// Numeric claims arrive as float64 after JSON decoding.
	if sub, ok := claims["sub"].(float64); ok {
		c.Set("user_id", uint64(sub))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
	if uname, ok := claims["uname"].(string); ok {
		c.Set("username", uname)
	}
}

// JWTAuth validates a Bearer access token and injects user_id, role and
// username into the request context. Protected routes are wrapped with
// this so handlers can read the verified identity via c.Get.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, ok := parseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setIdentity(c, claims)
			return next(c)
		}
	}
}

// OptionalJWTAuth injects the identity when a valid Bearer token is
// present and lets the request through anonymously otherwise. Public
// listings use it to widen results for signed-in users.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				if claims, ok := parseAccessToken(secret, strings.TrimPrefix(auth, "Bearer ")); ok {
					setIdentity(c, claims)
				}
			}
			return next(c)
		}
	}
}
