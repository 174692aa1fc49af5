package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// Respond writes a success envelope.
func Respond(c *fiber.Ctx, code int, data any, message string) error {
	return c.Status(code).JSON(Envelope{Status: StatusSuccess, Data: data, Message: message})
}

// ErrorHandler renders any error returned from a handler as an error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			log.Printf("%s %s: %v", c.Method(), c.Path(), appErr.Err)
		}
		return c.Status(appErr.Status).JSON(Envelope{Status: StatusError, Message: appErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(Envelope{Status: StatusError, Message: fiberErr.Message})
	}

	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{Status: StatusError, Message: "Internal server error."})
}
