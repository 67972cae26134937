// Package errors defines all exported error sentinels for the lzjd library.
//
// This is the single source of truth for error values. Both the top-level
// lzjd package and the command-line tool import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Digest persistence errors
var (
	// ErrParse is returned when a persisted digest line does not match the
	// lzjd:<name>:<base64> shape.
	ErrParse = errors.New("lzjd: malformed digest line")

	// ErrDecode is returned when a digest payload is not valid base64 or
	// its decoded length is not a multiple of 8 bytes.
	ErrDecode = errors.New("lzjd: malformed digest payload")
)

// Comparison errors
var (
	// ErrBadThreshold is returned when a similarity threshold is outside [0, 100].
	ErrBadThreshold = errors.New("lzjd: threshold must be in [0, 100]")

	// ErrBadWorkers is returned when a worker count is not positive.
	ErrBadWorkers = errors.New("lzjd: worker count must be positive")
)

// Tool configuration errors
var (
	// ErrNoInputs is returned when no input paths were supplied.
	ErrNoInputs = errors.New("lzjd: no input paths")

	// ErrTooManyInputs is returned when compare mode is invoked with more
	// than two digest files.
	ErrTooManyInputs = errors.New("lzjd: can only compare at most two digest files at a time")
)
