// Package version provides centralized version information for the saf CLI.
// The eMASS client sends it in the User-Agent header and `saf version` prints it.
// Follows semantic versioning (semver) conventions.

package version

// SafVersion holds the current saf CLI version.
// Format: major.minor.patch[-prerelease][+build]
const SafVersion = "0.4.0-dev"

// HDFVersion is the Heimdall Data Format schema version stamped into
// documents produced by the converters.
const HDFVersion = "2.10.4"
