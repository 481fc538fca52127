package records

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("employee email already exists")
)

// ValidationError is a local, pre-request rejection of a candidate record.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
