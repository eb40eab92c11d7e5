package visitor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no record exists for the requested ID.
var ErrNotFound = errors.New("visitor not found")

// ValidationError reports required fields that were empty or missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
