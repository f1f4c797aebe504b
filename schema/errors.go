package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned when a schema key holds a value of the wrong type.
	ErrInvalidValue = errors.New("schema: invalid value")

	// ErrInvalidSchema is returned when a schema document cannot be decoded.
	ErrInvalidSchema = errors.New("schema: invalid document")
)

// Error is a schema-build error tied to a key.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema key %q: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
