package generator

import (
	"errors"
	"fmt"
)

// ErrTypeNotSupported is returned when a type cannot be expressed as a schema.
var ErrTypeNotSupported = errors.New("type not supported")

// TypeNotSupportedError names the type that could not be compiled.
type TypeNotSupportedError struct {
	Type   string
	Reason string
	Err    error
}

func (e *TypeNotSupportedError) Error() string {
	msg := fmt.Sprintf("the type %q is currently not supported", e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *TypeNotSupportedError) Unwrap() error {
	return e.Err
}

func (e *TypeNotSupportedError) Is(target error) bool {
	return target == ErrTypeNotSupported
}
