package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnsupported   = errors.New("unsupported format")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownFilter = errors.New("unknown filter dimension")
)
