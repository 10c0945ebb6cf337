// Package validation checks configuration structs against their `validate`
// struct tags and reports failures as INVALID_CONFIG errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	lerrors "github.com/matzehuels/topolayout/pkg/errors"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their configuration-file key so messages match what
	// users wrote, falling back to the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"toml", "yaml", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// Struct validates v and returns an INVALID_CONFIG error naming the first
// offending field, prefixed with section (for example "force").
func Struct(section string, v any) error {
	if v == nil {
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "%s: configuration cannot be nil", section)
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(section, err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(section string, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "%s: invalid configuration", section)
	}

	// Return the first validation error in a user-friendly format
	e := validationErrs[0]
	field := fieldPath(section, e.Namespace())
	return lerrors.New(lerrors.ErrCodeInvalidConfig, "%s: %s (got %v)", field, describe(e.Tag(), e.Param()), e.Value())
}

func describe(tag, param string) string {
	switch tag {
	case "required":
		return "field is required"
	case "gt":
		return "must be greater than " + param
	case "gte", "min":
		return "must be at least " + param
	case "lt":
		return "must be less than " + param
	case "lte", "max":
		return "must not exceed " + param
	case "oneof":
		return "must be one of [" + param + "]"
	default:
		return fmt.Sprintf("validation failed (%s)", tag)
	}
}

// fieldPath drops the top-level struct name from a validator namespace so
// "Options.routing.grid_size" becomes "force.routing.grid_size".
func fieldPath(section, namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if section == "" {
		return namespace
	}
	return section + "." + namespace
}
