// Package commands provides the command tree of the saf CLI.
//
// COMMAND STRUCTURE:
//   - emasser get <endpoint> [ACTION]: read from the eMASS API, one subcommand per catalog endpoint
//   - emasser configure: write the eMASS connection .env interactively
//   - convert netsparker2hdf: translate a scan report into HDF
//   - supplement target|passthrough read|write: inspect or patch HDF supplements
//   - version: print version information
//
// Commands carry no behavior of their own; RunE functions are assigned by the
// main package from the handlers package.
package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "saf",
	Short: "Security Automation Framework CLI",
	Long: `saf connects security tooling to compliance workflows.

It reads system, POA&M, artifact and workflow records from the eMASS API,
converts scanner reports into the Heimdall Data Format (HDF) and patches
supplemental data into existing HDF documents.`,
	SilenceUsage: true,
	Example: `  # Check the eMASS connection
  saf emasser get test connection

  # List workflow instances as YAML
  saf emasser get workflow_instances all --includeComments --format=yaml

  # Convert a Netsparker report
  saf convert netsparker2hdf -i scan.xml -o scan-hdf

  # Attach target information to a results file
  saf supplement target write -i results.json -d '{"host":"db01"}'`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(emasserCmd)
	RootCmd.AddCommand(convertCmd)
	RootCmd.AddCommand(supplementCmd)
	RootCmd.AddCommand(versionCmd)

	emasserCmd.AddCommand(emasserGetCmd)
	emasserCmd.AddCommand(emasserConfigureCmd)

	convertCmd.AddCommand(netsparker2hdfCmd)

	supplementCmd.AddCommand(targetCmd)
	supplementCmd.AddCommand(passthroughCmd)
	targetCmd.AddCommand(targetReadCmd, targetWriteCmd)
	passthroughCmd.AddCommand(passthroughReadCmd, passthroughWriteCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, logLevelPtr *string, formatPtr *string,
	noColorPtr *bool, timeoutPtr *time.Duration, envFilePtr *string,
	defaultLogLevel, defaultFormat, defaultEnvFile string) {
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", defaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().StringVar(formatPtr, "format", defaultFormat,
		"Result format for eMASS responses: json, yaml")
	rootCmd.PersistentFlags().BoolVar(noColorPtr, "no-color", false,
		"Disable colorized output")
	rootCmd.PersistentFlags().DurationVar(timeoutPtr, "timeout", 0,
		"eMASS request timeout, e.g. 30s (0 waits indefinitely)")
	rootCmd.PersistentFlags().StringVar(envFilePtr, "env-file", defaultEnvFile,
		"File holding the EMASSER_* connection settings")
}
