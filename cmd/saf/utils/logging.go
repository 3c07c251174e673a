// Package utils provides utility functions for the saf CLI.
// This file contains logging setup.
package utils

import (
	"os"

	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/internal/logging"
)

// SetupLogging configures CLI logging behavior based on environment and config.
// Enables debug output when DEBUG=true, otherwise --log-level applies.
func SetupLogging() {
	if os.Getenv("DEBUG") == "true" {
		// Show debug output - restore normal logging and enable DEBUG level
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}

	// Suppress info logs by default (only show errors) unless --log-level asks for more
	logging.SuppressOutput()
	logging.SetLevel(config.Global.LogLevel)
}
