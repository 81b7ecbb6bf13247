package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches a sentinel to err so callers can match either one with the
// standard library's errors.Is while the original cause is preserved for
// logging. The cause comes first in the unwrap chain.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: err, mark: markErr}
}

type marked struct {
	cause error
	mark  error
}

func (m *marked) Error() string {
	return m.cause.Error()
}

func (m *marked) Unwrap() []error {
	return []error{m.cause, m.mark}
}
