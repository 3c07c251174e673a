// Package config provides configuration management for the saf CLI.
package config

import (
	"fmt"

	"github.com/secureonelabs/saf/internal/logging"
	"github.com/secureonelabs/saf/internal/present"
	"github.com/secureonelabs/saf/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateGlobalFlags validates all global flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := ValidateLogLevel(); err != nil {
		return err
	}

	if err := ValidateFormat(); err != nil {
		return err
	}

	if err := validate.ValidateNonNegativeTimeout(Global.Timeout, "--timeout"); err != nil {
		return err
	}

	return nil
}

// ValidateLogLevel validates the --log-level flag
func ValidateLogLevel() error {
	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return fmt.Errorf("%w - valid: DEBUG, INFO, WARN, ERROR", err)
	}
	return nil
}

// ValidateFormat validates the --format flag
func ValidateFormat() error {
	return validate.ValidateOneOf(Global.Format, "format", present.Formats...)
}
