package handlers

import (
	"fmt"

	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/internal/version"
	"github.com/spf13/cobra"
)

// HandleVersion prints the saf version and the HDF schema version it writes.
func HandleVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "saf %s (HDF %s)\n", config.Version, version.HDFVersion)
	return nil
}
