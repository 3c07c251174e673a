package commands

import "github.com/spf13/cobra"

// Convert command group
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert security tool output to the Heimdall Data Format",
}

// Netsparker conversion command
var netsparker2hdfCmd = &cobra.Command{
	Use:   "netsparker2hdf -i <netsparker-xml> -o <hdf-scan-results-json>",
	Short: "Translate a Netsparker XML results file into a Heimdall Data Format JSON file",
	Long: `Translate a Netsparker Enterprise XML results file into a Heimdall Data
Format JSON file. Findings are grouped into one control per vulnerability
type; each affected URL becomes a failed result.`,
	Example: `  saf convert netsparker2hdf -i netsparker_results.xml -o output-hdf-name.json`,
	Args:    cobra.NoArgs,
}

// SetupConvertFlags configures flags for convert commands
func SetupConvertFlags(inputPtr, outputPtr *string, includeRawPtr *bool) {
	netsparker2hdfCmd.Flags().StringVarP(inputPtr, "input", "i", "", "Input Netsparker XML file")
	netsparker2hdfCmd.Flags().StringVarP(outputPtr, "output", "o", "", "Output HDF JSON file")
	netsparker2hdfCmd.Flags().BoolVarP(includeRawPtr, "includeRaw", "w", false, "Include raw input file in HDF JSON file")
	netsparker2hdfCmd.MarkFlagRequired("input")
	netsparker2hdfCmd.MarkFlagRequired("output")
}

// GetConvertCommands returns the convert commands for handler assignment.
func GetConvertCommands() *cobra.Command {
	return netsparker2hdfCmd
}
