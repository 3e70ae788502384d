package environment

import "errors"

// Error implements errors unique to environments, recording the
// operation that failed
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrInvalidAction is reported when an action lies outside of an
// environment's action space
var ErrInvalidAction = errors.New("invalid action")

// ErrShape is reported when a space or observation has an illegal shape
var ErrShape = errors.New("invalid shape")

// ErrDiscount is reported when a discount factor lies outside (0, 1]
var ErrDiscount = errors.New("discount out of range")

// IsInvalidAction returns whether or not an error reports that an
// action was outside of the environment's action space
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

// IsShape returns whether or not an error reports an illegal shape
func IsShape(err error) bool {
	return errors.Is(err, ErrShape)
}
