package metadata

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is returned when the source of a type cannot be read.
var ErrSourceUnavailable = errors.New("type source unavailable")

var errDeclarationNotFound = errors.New("declaration not found")

// SourceError describes a type whose source could not be read.
type SourceError struct {
	Type    string
	Package string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read source of %s in package %s: %v", e.Type, e.Package, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
