package commands

import "github.com/spf13/cobra"

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
}

// GetVersionCommand returns the version command for handler assignment.
func GetVersionCommand() *cobra.Command {
	return versionCmd
}
