// Package config provides configuration management for the saf CLI.
package config

import (
	"time"

	"github.com/secureonelabs/saf/internal/emass"
	"github.com/secureonelabs/saf/internal/version"
)

// Version returns the current saf CLI version from the centralized version package
var Version = version.SafVersion

const (
	DefaultLogLevel = "ERROR"
	DefaultFormat   = "json"
	DefaultEnvFile  = emass.DefaultEnvFile
)

// Global holds the global CLI configuration
var Global struct {
	LogLevel string        // Log level for CLI operations
	Format   string        // Result format: json, yaml
	NoColor  bool          // Disable colorized output
	Timeout  time.Duration // eMASS request timeout, 0 for none
	EnvFile  string        // dotenv file with EMASSER_* settings
}

// Convert holds the convert command configuration
var Convert struct {
	Input      string // Source scan report
	Output     string // HDF output path (.json is appended when missing)
	IncludeRaw bool   // Copy the source report into passthrough.raw
}

// Supplement holds the supplement command configuration, shared by the
// target and passthrough command groups.
var Supplement struct {
	Input  string // HDF file to read or patch
	Output string // Patched file, defaults to Input
	Data   string // Inline payload
	File   string // Payload file
}
