package config

import "errors"

var (
	// ErrInvalidConfig is wrapped by every configuration error.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingInput is wrapped, together with ErrInvalidConfig, when a
	// required input has no value.
	ErrMissingInput = errors.New("missing required input")
)
