package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownEvent    = errors.New("unknown event")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrCorruptState    = errors.New("corrupt session state")
)
