package practices

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed query. It is the only error kind that
// crosses the service boundary; provider-side failures degrade to defaults.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s", e.Value, e.Field)
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
