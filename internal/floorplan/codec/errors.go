package codec

import (
	"errors"
	"fmt"
)

// ErrDecode is matched by every *DecodeError.
var ErrDecode = errors.New("invalid floor plan payload")

// DecodeError reports an import payload that is not JSON or does not have
// the shape of a project.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode floor plan: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode floor plan: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
