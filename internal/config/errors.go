package config

import "errors"

var (
	// ErrNoStartURL is returned when no start URL is provided
	ErrNoStartURL = errors.New("no start URL provided")
	// ErrInvalidMaxPages is returned when max_pages is negative
	ErrInvalidMaxPages = errors.New("max_pages must not be negative")
	// ErrInvalidDelay is returned when request_delay is negative
	ErrInvalidDelay = errors.New("request_delay must not be negative")
	// ErrInvalidTimeout is returned when request timeout is not greater than 0
	ErrInvalidTimeout = errors.New("request_timeout must be greater than 0")
	// ErrInvalidContentLimit is returned when content_limit is negative
	ErrInvalidContentLimit = errors.New("content_limit must not be negative")
	// ErrInvalidNavThreshold is returned when nav_threshold is outside [0,1]
	ErrInvalidNavThreshold = errors.New("nav_threshold must be between 0.0 and 1.0")
	// ErrEmptyOutputPath is returned when the output path is empty
	ErrEmptyOutputPath = errors.New("output_path cannot be empty")
)
