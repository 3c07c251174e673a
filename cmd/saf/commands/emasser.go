package commands

import (
	"fmt"
	"strings"

	"github.com/secureonelabs/saf/internal/endpoint"
	"github.com/spf13/cobra"
)

// eMASS command group
var emasserCmd = &cobra.Command{
	Use:   "emasser",
	Short: "Interact with the eMASS REST API",
	Long: `Commands for the Enterprise Mission Assurance Support Service (eMASS) API.

Connection settings are read from a .env file in the working directory (see
--env-file) and EMASSER_* environment variables, which take precedence.
Run 'saf emasser configure' to create the file.`,
}

// eMASS get command. One subcommand per catalog endpoint is added by
// SetupEndpointCommands; the group's own RunE rejects unknown endpoint names.
var emasserGetCmd = &cobra.Command{
	Use:   "get ENDPOINT [ACTION]",
	Short: "Retrieve records from eMASS",
	Long: `Retrieve records from an eMASS endpoint.

Each endpoint offers one or more actions selecting what to fetch, e.g.
'saf emasser get poams forSystem --systemId=35'. Run 'saf emasser get
ENDPOINT --help' for the actions and flags of one endpoint.`,
	Args: cobra.ArbitraryArgs,
}

// eMASS configure command
var emasserConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write the eMASS connection settings to a .env file",
	Long: `Prompt for the eMASS connection settings and write them to the .env file
named by --env-file. Current values from the file and EMASSER_* variables are
offered as defaults.`,
	Example: `  # Create or update ./.env
  saf emasser configure

  # Write a settings file for another environment
  saf emasser configure --env-file staging.env`,
	Args: cobra.NoArgs,
}

// SetupEndpointCommands adds one `saf emasser get <endpoint>` command per
// registered endpoint. run is the RunE shared by all of them.
func SetupEndpointCommands(reg *endpoint.Registry, run func(cmd *cobra.Command, args []string) error) error {
	cmds, err := NewEndpointCommands(reg, run)
	if err != nil {
		return err
	}
	emasserGetCmd.AddCommand(cmds...)
	return nil
}

// NewEndpointCommands builds the endpoint commands of reg. Help text and
// flags come from the registry.
func NewEndpointCommands(reg *endpoint.Registry, run func(cmd *cobra.Command, args []string) error) ([]*cobra.Command, error) {
	var cmds []*cobra.Command
	for _, name := range reg.Names() {
		def, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		long, err := reg.Describe(name)
		if err != nil {
			return nil, err
		}
		examples, err := reg.Examples(name)
		if err != nil {
			return nil, err
		}

		cmd := &cobra.Command{
			Use:       fmt.Sprintf("%s [ACTION]", def.Name),
			Short:     def.Description,
			Long:      long,
			Example:   "  " + strings.Join(examples, "\n  "),
			Args:      cobra.ArbitraryArgs, // surplus arguments get the usage hint from run
			ValidArgs: def.Actions(),
			RunE:      run,
		}
		declareFlags(cmd, def)
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// declareFlags declares the union of the endpoint's parameters. None is
// marked required here; requiredness depends on the chosen action.
func declareFlags(cmd *cobra.Command, def *endpoint.EndpointDefinition) {
	flags := cmd.Flags()
	for _, p := range def.Flags() {
		switch p.Kind {
		case endpoint.KindBool:
			flags.BoolP(p.Flag, p.Short, false, p.Description)
		case endpoint.KindInt:
			flags.IntP(p.Flag, p.Short, 0, p.Description)
		case endpoint.KindStrings:
			flags.StringSliceP(p.Flag, p.Short, nil, p.Description)
		default:
			flags.StringP(p.Flag, p.Short, "", p.Description)
		}
	}
}

// GetEmasserCommands returns the emasser commands for handler assignment.
func GetEmasserCommands() (getCmd, configureCmd *cobra.Command) {
	return emasserGetCmd, emasserConfigureCmd
}
