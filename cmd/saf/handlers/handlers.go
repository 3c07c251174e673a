// Package handlers provides command handler functions for saf.
//
// The package is organized as follows:
// - emasser.go: `saf emasser get <endpoint>` for every catalog endpoint
// - configure.go: the interactive .env wizard
// - convert.go: scan report conversion to HDF
// - supplement.go: reading and patching HDF supplements
// - version.go: version information
//
// All handlers follow the cobra RunE signature, set up logging first, log
// progress through the logging package and write results through the
// present package to the command's output streams.
package handlers

import (
	"os"

	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/internal/present"
	"github.com/spf13/cobra"
)

// presenter builds a presenter on the command's output streams using the
// global --format and --no-color settings. Color is only used on a terminal
// and never when NO_COLOR is set.
func presenter(cmd *cobra.Command) *present.Presenter {
	out := cmd.OutOrStdout()
	color := !config.Global.NoColor && os.Getenv("NO_COLOR") == "" && present.IsTerminal(out)
	return present.New(out, cmd.ErrOrStderr(), present.Options{
		Format: present.Format(config.Global.Format),
		Color:  color,
	})
}
