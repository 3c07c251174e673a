package validate

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateNonNegativeTimeout accepts zero (wait indefinitely) or any positive duration.
func ValidateNonNegativeTimeout(timeout time.Duration, name string) error {
	if err := ValidateField(int64(timeout), "min=0"); err != nil {
		return fmt.Errorf("%s cannot be negative", name)
	}
	return nil
}

// ValidateOneOf checks value against a closed set of allowed strings.
func ValidateOneOf(value, fieldName string, allowed ...string) error {
	if err := ValidateField(value, "oneof="+strings.Join(allowed, " ")); err != nil {
		return fmt.Errorf("invalid %s '%s' - valid: %s", fieldName, value, strings.Join(allowed, ", "))
	}
	return nil
}
