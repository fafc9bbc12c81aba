package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the product id did not resolve.
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyExists means an active product already claims the SKU.
	ErrAlreadyExists = errors.New("product already exists")
	// ErrInvalidArgument means the operation itself is malformed,
	// e.g. an unknown stock operation or negative pagination values.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError reports every field-level violation found in an
// input, not just the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(e.Violations, "; "))
}

// AsValidationError unwraps err into a ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
