package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AppError carries the error taxonomy across service boundaries so the
// controller can translate it into the right status code without parsing
// message strings. Replay failures inside the moderation transaction come
// back as one of these.
type AppError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string][]string
}

func (e *AppError) Error() string {
	return e.Message
}

func ErrForbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{Status: fiber.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

func ErrNotFound(message string) *AppError {
	if message == "" {
		message = "not found"
	}
	return &AppError{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

func ErrValidation(message string, fields map[string][]string) *AppError {
	if message == "" {
		message = "validation failed"
	}
	return &AppError{Status: fiber.StatusBadRequest, Code: "VALIDATION_ERROR", Message: message, Fields: fields}
}

func ErrConflict(message string) *AppError {
	if message == "" {
		message = "conflict"
	}
	return &AppError{Status: fiber.StatusBadRequest, Code: "CONFLICT", Message: message}
}

// ErrInvalidState marks an attempt to re-review a proposal that already
// reached a terminal status.
func ErrInvalidState(message string) *AppError {
	if message == "" {
		message = "invalid state"
	}
	return &AppError{Status: fiber.StatusConflict, Code: "INVALID_STATE", Message: message}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505), regardless of which driver produced it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "SQLSTATE 23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}

// JsonAppError renders any service error through the standard envelope.
func JsonAppError(c *fiber.Ctx, err error) error {
	if ae, ok := AsAppError(err); ok {
		if len(ae.Fields) > 0 {
			return JsonErrorWithFields(c, ae.Status, ae.Message, ae.Fields)
		}
		return JsonError(c, ae.Status, ae.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "not found")
	}
	if IsUniqueViolation(err) {
		return JsonError(c, fiber.StatusBadRequest, "duplicate value")
	}
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}
