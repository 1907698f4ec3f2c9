package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVerbosity is returned when the verbose level is below 1.
var ErrInvalidVerbosity = errors.New("verbose level must be at least 1")

// ConfigError reports configuration keys that are not recognized.
type ConfigError struct {
	Invalid []string
	Valid   []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("the following parameter(s) are not valid: %s; the valid parameters are %s",
		strings.Join(e.Invalid, ", "), strings.Join(e.Valid, ", "))
}

// ConfigValueError reports a recognized configuration key holding a value of
// the wrong shape.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ConfigValueError struct {
	Key   string
	Value any
	cause error
}

func (e *ConfigValueError) Error() string {
	msg := fmt.Sprintf("invalid value %v (%T) for parameter %s", e.Value, e.Value, e.Key)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *ConfigValueError) Unwrap() error { return e.cause }
