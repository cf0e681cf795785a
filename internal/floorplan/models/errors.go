package models

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every *ValidationError.
var ErrInvalid = errors.New("invalid floor plan entity")

// ValidationError reports a single draft field that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
