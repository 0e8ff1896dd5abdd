package messaging

import "errors"

type nonRetryableError struct {
	err error
}

func (e nonRetryableError) Error() string { return e.err.Error() }
func (e nonRetryableError) Unwrap() error { return e.err }

// NonRetryable marks err so WithRetry gives up immediately. The message still
// goes to the DLQ.
func NonRetryable(err error) error {
	if err == nil {
		return nil
	}
	return nonRetryableError{err: err}
}

func IsNonRetryable(err error) bool {
	var nr nonRetryableError
	return errors.As(err, &nr)
}
