package export

import (
	"errors"
	"fmt"
)

// ErrEncode is matched by every *EncodeError.
var ErrEncode = errors.New("export failed")

// EncodeError reports an encoder that could not produce output.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}
