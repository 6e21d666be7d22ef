package usecase

import (
	"fmt"
	"strings"

	"example.com/userapi/internal/storage"
	"example.com/userapi/internal/validation"
)

// ValidationError carries every failing field of a rejected write.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return "invalid user: " + strings.Join(e.Fields.Fields(), ", ")
}

// NotFoundError reports the id that matched no record.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with ID %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return storage.ErrNotFound }

// BadRequestError is returned for an id that is not an integer at all.
type BadRequestError struct {
	Value string
}

func (e *BadRequestError) Error() string {
	return "user ID must be a number"
}
