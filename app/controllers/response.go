package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/env"
)

// Error codes carried in the "error" field of the response envelope.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeFeatureDisabled = "feature_disabled"
	ErrCodeTooManyRequests = "too_many_requests"
	ErrCodeInternal        = "internal_server_error"
)

// Envelope is the body of every API response.
type Envelope struct {
	Error   *string `json:"error"`
	Data    any     `json:"data"`
	Message string  `json:"message"`
}

// JSON writes a successful envelope.
func JSON(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Envelope{Data: data, Message: message})
}

// Error writes a failed envelope without data.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return ErrorWithData(c, status, code, message, nil)
}

func ErrorWithData(c *fiber.Ctx, status int, code, message string, data any) error {
	return c.Status(status).JSON(Envelope{Error: &code, Data: data, Message: message})
}

// InternalError logs err and answers 500. The error text is only exposed
// when APP_ENV=dev.
func InternalError(c *fiber.Ctx, err error) error {
	log.Errorf("[API] %s %s failed: %v", c.Method(), c.Path(), err)

	message := "Something went wrong"
	if env.IsDev() && err != nil {
		message = err.Error()
	}
	return Error(c, fiber.StatusInternalServerError, ErrCodeInternal, message)
}

// HandleAPIError is the fiber.Config ErrorHandler. It keeps errors that escape
// handlers, including fiber's own 404/405, inside the envelope.
func HandleAPIError(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		switch e.Code {
		case fiber.StatusNotFound:
			return Error(c, e.Code, ErrCodeNotFound, e.Message)
		case fiber.StatusTooManyRequests:
			return Error(c, e.Code, ErrCodeTooManyRequests, e.Message)
		case fiber.StatusInternalServerError:
			return InternalError(c, err)
		default:
			return Error(c, e.Code, ErrCodeBadRequest, e.Message)
		}
	}
	return InternalError(c, err)
}
