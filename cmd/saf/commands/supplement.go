package commands

import (
	"github.com/secureonelabs/saf/internal/hdf"
	"github.com/spf13/cobra"
)

// Supplement command group
var supplementCmd = &cobra.Command{
	Use:   "supplement",
	Short: "Read or write supplemental data in HDF files",
	Long: `Supplements are free-form top-level attributes of an HDF results file.
'target' describes what was scanned; 'passthrough' carries any extra data
that downstream tools should keep.`,
}

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Read or write the target attribute of an HDF file",
}

var passthroughCmd = &cobra.Command{
	Use:   "passthrough",
	Short: "Read or write the passthrough attribute of an HDF file",
}

var targetReadCmd = newSupplementReadCmd(hdf.AttrTarget)
var targetWriteCmd = newSupplementWriteCmd(hdf.AttrTarget)
var passthroughReadCmd = newSupplementReadCmd(hdf.AttrPassthrough)
var passthroughWriteCmd = newSupplementWriteCmd(hdf.AttrPassthrough)

func newSupplementReadCmd(attr string) *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Read the " + attr + " attribute of an HDF file",
		Long: `Print the '` + attr + `' attribute of an HDF file, or write it to a JSON file
with --output. A file without the attribute reads as an empty object.`,
		Example: `  saf supplement ` + attr + ` read -i hdf.json -o ` + attr + `.json`,
		Args:    cobra.NoArgs,
	}
}

func newSupplementWriteCmd(attr string) *cobra.Command {
	return &cobra.Command{
		Use:   "write",
		Short: "Overwrite the " + attr + " attribute of an HDF file",
		Long: `Replace the '` + attr + `' attribute of an HDF file with new data.

The data comes from exactly one of --` + attr + `File (a JSON file) or
--` + attr + `Data (inline JSON; text that is not JSON is stored as a string).
The file is rewritten in place unless --output is given. Values are kept
exactly, but object keys are written in alphabetical order, so a diff against
the input may show moved lines.`,
		Example: `  saf supplement ` + attr + ` write -i hdf.json -d '{"host":"db01"}' -o new-hdf.json
  saf supplement ` + attr + ` write -i hdf.json -f ` + attr + `.json`,
		Args: cobra.NoArgs,
	}
}

// SetupSupplementFlags configures flags for supplement commands. Both
// attribute groups share the same configuration values.
func SetupSupplementFlags(inputPtr, outputPtr, dataPtr, filePtr *string) {
	for _, pair := range []struct {
		attr        string
		read, write *cobra.Command
	}{
		{hdf.AttrTarget, targetReadCmd, targetWriteCmd},
		{hdf.AttrPassthrough, passthroughReadCmd, passthroughWriteCmd},
	} {
		pair.read.Flags().StringVarP(inputPtr, "input", "i", "", "Input HDF file")
		pair.read.Flags().StringVarP(outputPtr, "output", "o", "", "Write the "+pair.attr+" data to this JSON file instead of printing it")
		pair.read.MarkFlagRequired("input")

		pair.write.Flags().StringVarP(inputPtr, "input", "i", "", "Input HDF file")
		pair.write.Flags().StringVarP(outputPtr, "output", "o", "", "Output HDF file (defaults to the input file)")
		pair.write.Flags().StringVarP(filePtr, pair.attr+"File", "f", "", "JSON file holding the new "+pair.attr+" data")
		pair.write.Flags().StringVarP(dataPtr, pair.attr+"Data", "d", "", "Inline "+pair.attr+" data, JSON or plain text")
		pair.write.MarkFlagRequired("input")
		pair.write.MarkFlagsMutuallyExclusive(pair.attr+"File", pair.attr+"Data")
	}
}

// GetSupplementCommands returns the supplement commands for handler assignment.
func GetSupplementCommands() (targetRead, targetWrite, passthroughRead, passthroughWrite *cobra.Command) {
	return targetReadCmd, targetWriteCmd, passthroughReadCmd, passthroughWriteCmd
}
