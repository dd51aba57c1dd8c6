// Package response provides helpers for consistent API responses.
package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/store"
)

// Error codes returned in the "code" field.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeCantFit         = "CANT_FIT"
	CodeNotFound        = "NOT_FOUND"
	CodeNotAvailable    = "NOT_AVAILABLE"
	CodeForbidden       = "FORBIDDEN"
	CodeDuplicateName   = "DUPLICATE_NAME"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Success sends a successful JSON response with the given data.
// The response will always include "error": false.
func Success(c echo.Context, data map[string]interface{}) error {
	return SuccessWithStatus(c, http.StatusOK, data)
}

// Created sends a 201 response with the given data.
func Created(c echo.Context, data map[string]interface{}) error {
	return SuccessWithStatus(c, http.StatusCreated, data)
}

// SuccessWithStatus sends a successful JSON response with a custom status.
func SuccessWithStatus(c echo.Context, statusCode int, data map[string]interface{}) error {
	resp := make(map[string]interface{}, len(data)+1)
	resp["error"] = false

	// Merge additional data
	for k, v := range data {
		resp[k] = v
	}

	return c.JSON(statusCode, resp)
}

// Error sends an error JSON response with the given status code and message.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, map[string]interface{}{
		"error":   true,
		"message": message,
	})
}

// ErrorWithCode sends an error response with a specific error code.
// This is useful for clients that need to handle specific error types.
func ErrorWithCode(c echo.Context, statusCode int, code string, message string) error {
	return c.JSON(statusCode, map[string]interface{}{
		"error":   true,
		"code":    code,
		"message": message,
	})
}

// FromError maps a domain error to its status and code. Unknown errors are
// logged and answered with a generic 500.
func FromError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, puzzle.ErrInvalidArgument):
		return ErrorWithCode(c, http.StatusBadRequest, CodeInvalidArgument, err.Error())
	case errors.Is(err, puzzle.ErrCantFit):
		return ErrorWithCode(c, http.StatusUnprocessableEntity, CodeCantFit, "could not fit the words into a square grid, try again or use fewer words")
	case errors.Is(err, store.ErrNotFound):
		return ErrorWithCode(c, http.StatusNotFound, CodeNotFound, "game not found")
	case errors.Is(err, store.ErrDuplicateName):
		return ErrorWithCode(c, http.StatusConflict, CodeDuplicateName, "a game with this name already exists")
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
	return ErrorWithCode(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
}
