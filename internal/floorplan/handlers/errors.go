package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"floorplan/internal/floorplan/capture"
	"floorplan/internal/floorplan/codec"
	"floorplan/internal/floorplan/editor"
	"floorplan/internal/floorplan/export"
	"floorplan/internal/floorplan/models"
	"floorplan/internal/floorplan/store"
)

var (
	errEmptyBody   = errors.New("empty body")
	errInvalidJSON = errors.New("invalid json")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errEmptyBody), errors.Is(err, errInvalidJSON):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInvalid), errors.Is(err, codec.ErrDecode):
		return fiber.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, editor.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, capture.ErrUnsupported):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, export.ErrEncode):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

func writeError(c fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
	}

	body := fiber.Map{"error": err.Error()}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	return c.Status(status).JSON(body)
}
