package fault

import (
	"errors"
	"fmt"
)

// Guard runs fn and converts a returned error or a panic into an *Error of
// the given kind. Errors that already are *Error keep their kind and code.
// Guard itself never panics.
func Guard(op string, kind Kind, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = New(op, kind, "", fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()

	if fnErr := fn(); fnErr != nil {
		var fe *Error
		if errors.As(fnErr, &fe) {
			return fnErr
		}
		return New(op, kind, "", fnErr)
	}
	return nil
}
