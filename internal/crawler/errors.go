package crawler

import "errors"

var (
	// ErrInvalidStartURL is returned when the start URL cannot be parsed
	// or is not an absolute http(s) URL.
	ErrInvalidStartURL = errors.New("invalid start URL")
	// ErrFirstFetchFailed is returned when the very first page fetch of a
	// run fails at the transport level, leaving nothing to report.
	ErrFirstFetchFailed = errors.New("first page fetch failed")
)
