package logger

import "errors"

var (
	// ErrInvalidEncoding is returned when an unknown log encoding is configured.
	ErrInvalidEncoding = errors.New("invalid log encoding format")
	// ErrInvalidFields is reported when logging fields are not key-value pairs.
	ErrInvalidFields = errors.New("invalid fields: must be key-value pairs")
)
