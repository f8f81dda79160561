package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrModelUnavailable   = errors.New("chat model unavailable")
	ErrSessionUnavailable = errors.New("session store unavailable")
)
