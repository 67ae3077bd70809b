package kafka

import "errors"

var (
	errEmptyOrderID  = errors.New("empty order_id")
	errEmptyDriverID = errors.New("empty driver_id")
)

// PermanentError marks an error that retrying the same message can
// never fix (malformed payload, rejected input).
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

// Permanent wraps err as a PermanentError.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// IsPermanent reports whether err is marked permanent.
func IsPermanent(err error) bool {
	var pe PermanentError
	return errors.As(err, &pe)
}
