package handlers

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/cmd/saf/utils"
	"github.com/secureonelabs/saf/internal/hdf"
	"github.com/secureonelabs/saf/internal/logging"
	"github.com/spf13/cobra"
)

// HandleSupplementWrite returns the handler of `saf supplement <attr> write`.
func HandleSupplementWrite(attr string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		utils.SetupLogging()

		res, err := hdf.Patch{
			Input:     config.Supplement.Input,
			Output:    config.Supplement.Output,
			Attribute: attr,
			Source: hdf.PayloadSource{
				Data: config.Supplement.Data,
				File: config.Supplement.File,
			},
		}.Apply()
		if err != nil {
			return err
		}

		logging.Success("Wrote %s to %s (%s)", attr, res.Output, humanize.Bytes(uint64(res.Bytes)))
		return nil
	}
}

// HandleSupplementRead returns the handler of `saf supplement <attr> read`.
// The attribute is printed as JSON, or written to --output when given.
func HandleSupplementRead(attr string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		utils.SetupLogging()

		value, err := hdf.ReadAttribute(config.Supplement.Input, attr)
		if err != nil {
			return err
		}

		if config.Supplement.Output == "" {
			data, err := hdf.EncodeJSON(value)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		}

		n, err := hdf.WriteJSON(config.Supplement.Output, value)
		if err != nil {
			return err
		}
		logging.Success("Wrote %s of %s to %s (%s)", attr, config.Supplement.Input,
			config.Supplement.Output, humanize.Bytes(uint64(n)))
		return nil
	}
}
