package imghdr

import "strings"

// Package-specific errors prefix.
const errorsPrefix = "imghdr:"

// Error is a special type for package-specific errors.
type Error uint8

// Error returns error in a string representation.
func (err Error) Error() string {
	var buf strings.Builder
	defer buf.Reset() // GC is our bro

	buf.WriteString(errorsPrefix + " ")

	switch err {
	case ErrNotFound:
		buf.WriteString("file does not exist")

	case ErrUnsupportedMode:
		buf.WriteString("unsupported usage (only read mode is allowed)")

	case ErrUnidentifiedFormat:
		buf.WriteString("unidentified image format")

	case ErrMalformedStructure:
		buf.WriteString("malformed image structure")

	case ErrDimensionsNotFound:
		buf.WriteString("could not determine image dimensions")

	default:
		buf.WriteString("unknown error")
	}

	return buf.String()
}

// Package-specific error constants.
const (
	ErrNotFound           Error = iota + 1 // file does not exist
	ErrUnsupportedMode                     // unsupported usage (only read mode is allowed)
	ErrUnidentifiedFormat                  // unidentified image format
	ErrMalformedStructure                  // malformed image structure
	ErrDimensionsNotFound                  // could not determine image dimensions
)
