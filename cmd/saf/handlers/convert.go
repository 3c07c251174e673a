package handlers

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/cmd/saf/utils"
	"github.com/secureonelabs/saf/internal/convert"
	"github.com/secureonelabs/saf/internal/convert/netsparker"
	"github.com/secureonelabs/saf/internal/hdf"
	"github.com/secureonelabs/saf/internal/logging"
	"github.com/spf13/cobra"
)

// HandleNetsparker2HDF handles `saf convert netsparker2hdf`.
func HandleNetsparker2HDF(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	data, err := os.ReadFile(config.Convert.Input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", config.Convert.Input, err)
	}
	if err := convert.CheckInput(config.Convert.Input, data, netsparker.Fingerprint); err != nil {
		return err
	}

	logging.Info("Converting %s (%s)", config.Convert.Input, humanize.Bytes(uint64(len(data))))
	exec, err := netsparker.Convert(data, netsparker.Options{IncludeRaw: config.Convert.IncludeRaw})
	if err != nil {
		return err
	}

	output := convert.CheckSuffix(config.Convert.Output)
	n, err := hdf.WriteJSON(output, exec)
	if err != nil {
		return err
	}

	logging.Success("Wrote %s (%s, %d controls)", output, humanize.Bytes(uint64(n)), len(exec.Profiles[0].Controls))
	return nil
}
