package serverutils

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("[PANIC RECOVERED] %v\n%s", r, debug.Stack())
				err = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
					fiber.StatusInternalServerError, ErrInternal.Error(),
				))
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		return WriteError(c, err)
	}
}

// WriteError maps err onto a status code and a JSON error body.
func WriteError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(ve.ToErrorDetails()))
	}

	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
	}
	if errors.Is(err, ErrBadRequest) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}
	if errors.Is(err, ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	}
	if errors.Is(err, ErrUnavailable) {
		log.Warnf("[UNAVAILABLE] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(
			fiber.StatusServiceUnavailable, ErrUnavailable.Error(),
		))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	var se *StorageError
	if errors.As(err, &se) {
		log.Errorf("[STORAGE] %s %s: %v", c.Method(), c.Path(), se)
	} else {
		log.Errorf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
		fiber.StatusInternalServerError, ErrInternal.Error(),
	))
}

// BadRequest wraps a decoding or parameter failure as ErrBadRequest.
func BadRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}
