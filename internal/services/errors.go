package services

import "errors"

// ValidationError marks a failure caused by the caller's input. Handlers
// return these as 400 with the message; every other service error is an
// internal failure and must not leak its text to the client.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err originated from input validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
