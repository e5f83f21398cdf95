package service

import "errors"

var (
	ErrUserNotFound   = errors.New("unknown _id")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrExportDisabled = errors.New("export disabled")
)

// ValidationError reports bad caller input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
