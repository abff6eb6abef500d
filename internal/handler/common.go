package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"guardianclima/internal/auth"
)

// currentClaims pulls the verified token claims the JWT middleware left
// on the context.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}
