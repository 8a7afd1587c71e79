package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into the provided configuration struct
// and validates the result.
//
// The default .env file is loaded once per process (existing variables win).
// Parsed values are never cached: every call re-reads the environment, so a
// caller that changes variables between calls sees the new values.
//
// Example:
//
//	type S3Config struct {
//		Bucket string `env:"S3_BUCKET" validate:"required"`
//		Region string `env:"S3_REGION" validate:"required"`
//		Port   int    `env:"S3_PORT" validate:"omitempty,port"`
//	}
//
//	var cfg S3Config
//	if err := config.Load(&cfg); err != nil {
//		var verr *config.ValidationError
//		if errors.As(err, &verr) {
//			// verr.Missing lists unset variables
//		}
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}
	return load(v, env.Parse(v), Lookup)
}

// LoadFrom works like Load but reads variables from environ instead of the
// process environment.
func LoadFrom[T any](v *T, environ map[string]string) error {
	if v == nil {
		return ErrNilPointer
	}
	if environ == nil {
		environ = map[string]string{}
	}
	lookup := func(name string) (string, bool) {
		val, ok := environ[name]
		return val, ok && val != ""
	}
	return load(v, env.ParseWithOptions(v, env.Options{Environment: environ}), lookup)
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// Lookup reports the value of an environment variable and whether it is set
// to a non-empty string. Whitespace-only values count as set.
func Lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	return v, ok && v != ""
}

// load merges parse and validation failures. A required field that fails
// although its variable is set parsed to a zero value, so it is reported as
// invalid rather than missing.
func load[T any](v *T, parseErr error, lookup func(string) (string, bool)) error {
	verr := &ValidationError{}
	invalid := make(map[string]bool)

	if parseErr != nil {
		var agg env.AggregateError
		if !errors.As(parseErr, &agg) {
			return errors.Join(ErrParsingConfig, parseErr)
		}
		for _, e := range agg.Errors {
			var pe env.ParseError
			if !errors.As(e, &pe) {
				return errors.Join(ErrParsingConfig, parseErr)
			}
			field, ok := findField(reflect.TypeOf(v), pe.Name)
			key := pe.Name
			if ok {
				key = fieldName(field)
			}
			invalid[key] = true
			verr.Invalid = append(verr.Invalid, parseMessage(key, field))
		}
	}

	if err := Validate(v); err != nil {
		var fieldErrs *ValidationError
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, name := range fieldErrs.Missing {
			switch {
			case invalid[name]:
			case isSet(lookup, name):
				field, _ := findEnvField(reflect.TypeOf(v), name)
				verr.Invalid = append(verr.Invalid, parseMessage(name, field))
			default:
				verr.Missing = append(verr.Missing, name)
			}
		}
		verr.Invalid = append(verr.Invalid, fieldErrs.Invalid...)
	}

	if verr.empty() {
		return nil
	}
	return verr
}

func parseMessage(key string, field reflect.StructField) string {
	if hasRule(field, "port") {
		return portMessage(key)
	}
	if field.Type != nil {
		return fmt.Sprintf("%s must be a valid %s", key, field.Type.Kind())
	}
	return key + " has an invalid value"
}

func isSet(lookup func(string) (string, bool), name string) bool {
	_, ok := lookup(name)
	return ok
}

// findEnvField looks a struct field up by its env variable name.
func findEnvField(t reflect.Type, name string) (reflect.StructField, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if fieldName(f) == name {
			return f, true
		}
		if f.Type.Kind() == reflect.Struct {
			if nested, ok := findEnvField(f.Type, name); ok {
				return nested, true
			}
		}
	}
	return reflect.StructField{}, false
}

// findField looks a struct field up by name, descending into nested structs.
func findField(t reflect.Type, name string) (reflect.StructField, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Name == name {
			return f, true
		}
		if f.Type.Kind() == reflect.Struct {
			if nested, ok := findField(f.Type, name); ok {
				return nested, true
			}
		}
	}
	return reflect.StructField{}, false
}
