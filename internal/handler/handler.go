package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
	"enrollhub/internal/validation"
)

// respondError maps a domain error to its HTTP response. internalMessage is
// the 500 fallback for unexpected failures.
func respondError(c echo.Context, err error, internalMessage string) error {
	he := apperrors.MapToHTTP(err, internalMessage)
	return c.JSON(he.Status, he.Payload)
}

// respondValidation renders validator errors as the shared 422 payload.
func respondValidation(c echo.Context, err error) error {
	return respondError(c, apperrors.NewValidationError(validation.Translate(err)), "")
}

// currentToken returns the access token resolved by the auth middleware,
// with its owning user preloaded. Only meaningful on protected routes.
func currentToken(c echo.Context) *model.AccessToken {
	token, _ := c.Get("user").(*model.AccessToken)
	return token
}

// parseID parses a numeric path parameter. ok is false for anything that
// cannot name an existing row, which handlers surface as their 404.
func parseID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
