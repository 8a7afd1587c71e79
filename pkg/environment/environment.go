package environment

import (
	"os"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Staging     Environment = "staging"
	Test        Environment = "test"
)

// Variables consulted by Current, in order.
var lookupOrder = []string{"APP_ENV", "GO_ENV"}

// Parse normalizes an environment name, accepting the short aliases
// "prod", "stage" and "dev". Unknown or empty names map to Development.
func Parse(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	case "test", "testing":
		return Test
	default:
		return Development
	}
}

// Current reads the application environment from APP_ENV, then GO_ENV.
// The variables are read on every call.
func Current() Environment {
	env, _ := Lookup()
	return env
}

// Lookup is Current that also reports whether APP_ENV or GO_ENV was set.
// When neither is, it returns Development and false.
func Lookup() (Environment, bool) {
	for _, key := range lookupOrder {
		if v := os.Getenv(key); v != "" {
			return Parse(v), true
		}
	}
	return Development, false
}

func IsProduction() bool  { return Current() == Production }
func IsDevelopment() bool { return Current() == Development }
func IsStaging() bool     { return Current() == Staging }

func (e Environment) String() string { return string(e) }
