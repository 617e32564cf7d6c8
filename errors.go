// Package floe defines the shared error taxonomy for the floe dataframe
// library.
//
// Every failure returned by the series, frame, lazy, reader and output
// packages wraps one of the sentinel errors declared here, so callers can
// classify failures with errors.Is regardless of which layer produced them:
//
//	df, err := frame.New(cols...)
//	if errors.Is(err, floe.ErrColumnNotFound) {
//	    // handle missing column
//	}
package floe

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure produced by the library.
var (
	// ErrColumnNotFound reports a reference to a column name that does not
	// exist in the frame.
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidOperation reports an operation that is well typed but not
	// valid for its inputs, such as mismatched series lengths or an
	// out-of-range row index.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrDataTypeMismatch reports an operation whose operand types are
	// incompatible, such as adding a string series to a numeric one.
	ErrDataTypeMismatch = errors.New("data type mismatch")

	// ErrUnsupported reports an operation that is not defined for the given
	// data type at all, such as a standard deviation over booleans.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrFileIO reports a failure reading or writing an external file.
	ErrFileIO = errors.New("file i/o error")

	// ErrParsing reports malformed input data, such as an unparseable CSV
	// cell or an invalid schema document.
	ErrParsing = errors.New("parse error")

	// ErrOther reports a failure that fits no other category.
	ErrOther = errors.New("unexpected error")
)

// ColumnNotFound returns an ErrColumnNotFound for the named column.
func ColumnNotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// InvalidOperation returns an ErrInvalidOperation with a formatted reason.
func InvalidOperation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}

// DataTypeMismatch returns an ErrDataTypeMismatch with a formatted reason.
func DataTypeMismatch(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDataTypeMismatch, fmt.Sprintf(format, args...))
}

// Unsupported returns an ErrUnsupported with a formatted reason.
func Unsupported(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}

// Other returns an ErrOther with a formatted reason.
func Other(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrOther, fmt.Sprintf(format, args...))
}

// FileIO wraps err as an ErrFileIO, keeping the cause visible to errors.Is.
func FileIO(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFileIO, path, err)
}

// Parsing wraps err as an ErrParsing, keeping the cause visible to errors.Is.
func Parsing(context string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrParsing, context, err)
}
