package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("port", func(fl validator.FieldLevel) bool {
		p := fl.Field().Int()
		return p >= 1 && p <= 65535
	})
	return v
}

// Validate checks v against its validate tags. Field names in the returned
// *ValidationError come from the env tag, falling back to the Go field name.
//
// Besides the stock validator rules, "port" accepts integers in [1,65535].
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			verr.Missing = append(verr.Missing, fe.Field())
			continue
		}
		verr.Invalid = append(verr.Invalid, ruleMessage(fe))
	}
	return verr
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "port":
		return portMessage(fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

func portMessage(field string) string {
	return field + " must be a valid port number (1-65535)"
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func hasRule(f reflect.StructField, rule string) bool {
	return slices.Contains(strings.Split(f.Tag.Get("validate"), ","), rule)
}
