// Package validate provides input validation for the saf CLI: global flag values,
// eMASS connection settings and the identifiers used in the endpoint catalog.
//
// All struct and field checks go through one shared go-playground/validator
// instance so tag semantics (required, url, file, oneof, min) are identical
// wherever they are used.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report field names by their env/flag key instead of the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("key"); name != "" {
			return name
		}
		return fld.Name
	})
}

// ValidateField validates a single value against a validator tag string,
// e.g. ValidateField(timeout, "min=0").
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}

// ValidateStruct validates s against its `validate` struct tags and flattens
// the result into one readable error listing every failing field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// describeFieldError turns a validator failure into a short user-facing phrase.
func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL (got %q)", fe.Field(), fe.Value())
	case "file":
		return fmt.Sprintf("%s must point to an existing file (got %q)", fe.Field(), fe.Value())
	case "required_with":
		return fmt.Sprintf("%s is required when %s is set", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %v)", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
