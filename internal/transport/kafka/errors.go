package kafka

import "errors"

// PermanentError marks an error that will not succeed on redelivery.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as a permanent error.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

func isPermanent(err error) bool {
	var pe PermanentError
	return errors.As(err, &pe)
}
