package memory

import "errors"

// ErrNotFound is returned when no document exists for a key. Absence is a
// normal outcome, signaled distinctly from failures.
type ErrNotFound struct {
	Key string
}

func (e ErrNotFound) Error() string {
	if e.Key == "" {
		return "memory not found"
	}

	return "memory not found: " + e.Key
}

// ErrMalformed is returned when a persisted document cannot be decoded.
// Unlike absence this is a hard failure: the data exists but is unusable.
type ErrMalformed struct {
	Key string
	Err error
}

func (e ErrMalformed) Error() string {
	return "malformed memory document: " + e.Key + ": " + e.Err.Error()
}

func (e ErrMalformed) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err signals document absence.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// IsMalformed reports whether err signals an undecodable persisted document.
func IsMalformed(err error) bool {
	var mf ErrMalformed
	return errors.As(err, &mf)
}
