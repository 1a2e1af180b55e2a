package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxNameLength bounds node names
	MaxNameLength = 128
)

// Custom tags registered on the singleton
const (
	// TagNodeName rejects names that would break composite "{name}-{network}" ids
	TagNodeName = "nodename"
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation(TagNodeName, func(fl validator.FieldLevel) bool {
		return ValidateNodeName(fl.Field().String()) == nil
	})
}

// ValidateStruct validates a value against its `validate` struct tags and
// returns the first violation in a readable form.
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateNodeName checks that a node name can be used in a composite id.
// The name part is everything before the first '-', so a name must not
// contain one.
func ValidateNodeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("node name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("node name '%s' exceeds maximum length of %d characters", name, MaxNameLength)
	}
	if strings.Contains(name, "-") {
		return fmt.Errorf("node name '%s' must not contain '-'", name)
	}
	return nil
}

// ValidateDirection checks a traversal direction string.
func ValidateDirection(direction string) error {
	switch direction {
	case "input", "output":
		return nil
	default:
		return fmt.Errorf("direction must be input or output, got %q", direction)
	}
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: value %q must be one of [%s]", field, e.Value(), param)
		case TagNodeName:
			return fmt.Errorf("%s: %q is not a valid node name", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
