package config

import (
	"errors"
	"fmt"
)

// Configuration errors. All of them are fatal and are reported before any
// check runs or any report file is created.
var (
	// ErrInvalidReporter is returned when a reporter name is not in the known set.
	ErrInvalidReporter = errors.New("not a valid reporter type")

	// ErrMissingReporterOption is returned when a reporter lacks a required
	// sub-option, such as the automate token or url.
	ErrMissingReporterOption = errors.New("missing reporter option")

	// ErrMultipleStdoutReporters is returned when more than one reporter
	// would write to standard output.
	ErrMultipleStdoutReporters = errors.New("the option --reporter can only have a single report outputting to stdout")

	// ErrMissingOptionValue is returned when an option that needs a value,
	// such as --password, was given without one.
	ErrMissingOptionValue = errors.New("missing option value")

	// ErrInvalidReporterSpec is returned when the reporter option is neither
	// a list of strings nor an object keyed by reporter name.
	ErrInvalidReporterSpec = errors.New("invalid reporter specification")

	// ErrMalformedConfig is returned when the configuration document cannot be parsed.
	ErrMalformedConfig = errors.New("malformed configuration document")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)

// MalformedConfigError carries the parse error together with the raw text
// of the document so the user can see what was rejected.
type MalformedConfigError struct {
	// Source is the file path, or "-" for standard input.
	Source string

	// Raw is the unparsed document text.
	Raw string

	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("failed to load JSON configuration: %v\nConfig was: %q", e.Err, e.Raw)
}

// Unwrap allows errors.Is to match both ErrMalformedConfig and the decoder error.
func (e *MalformedConfigError) Unwrap() []error {
	return []error{ErrMalformedConfig, e.Err}
}
