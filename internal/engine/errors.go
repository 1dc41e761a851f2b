package engine

import (
	"errors"
	"fmt"
)

// ErrTablesNotInitialized is returned when a render is attempted before the
// lookup tables were built for a resolution and field of view.
var ErrTablesNotInitialized = errors.New("lookup tables not initialized")

// ConfigurationError reports a renderer set-up problem the caller must fix
// before rendering, such as a missing resolution or an invalid field of view.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "renderer configuration"
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func notInitialized(field string) error {
	return &ConfigurationError{Field: field, Reason: "initialize tables before the first render", Err: ErrTablesNotInitialized}
}
