package config

import (
	"errors"
	"strings"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)

// ValidationError lists every missing or malformed field of a configuration.
// Field names are the environment variable names taken from the env tag.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	switch len(e.Missing) {
	case 0:
	case 1:
		parts = append(parts, "missing required environment variable: "+e.Missing[0])
	default:
		parts = append(parts, "missing required environment variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, strings.Join(e.Invalid, "; "))
	}
	return strings.Join(parts, "; ")
}

// Problems returns missing and invalid entries as human-readable messages.
func (e *ValidationError) Problems() []string {
	out := make([]string, 0, len(e.Missing)+len(e.Invalid))
	for _, name := range e.Missing {
		out = append(out, "missing required environment variable: "+name)
	}
	return append(out, e.Invalid...)
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}
