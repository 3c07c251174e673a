// Package main provides the entry point for the saf CLI.
//
// INITIALIZATION FLOW:
// 1. Load the embedded eMASS endpoint catalog into a registry
// 2. Command structure setup, including one `emasser get` subcommand per endpoint
// 3. Flag configuration for global and command-specific options
// 4. Handler assignment linking commands to their operations
// 5. Command execution under a signal-aware context, exit 1 on error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/secureonelabs/saf/cmd/saf/commands"
	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/cmd/saf/handlers"
	"github.com/secureonelabs/saf/internal/emass"
	"github.com/secureonelabs/saf/internal/endpoint"
	"github.com/secureonelabs/saf/internal/hdf"
)

func init() {
	// Get root command from commands package
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	// Setup all command structures
	commands.SetupCommands()

	// Setup global flags
	commands.SetupGlobalFlags(rootCmd, &config.Global.LogLevel, &config.Global.Format,
		&config.Global.NoColor, &config.Global.Timeout, &config.Global.EnvFile,
		config.DefaultLogLevel, config.DefaultFormat, config.DefaultEnvFile)

	// Setup command-specific flags
	commands.SetupConvertFlags(&config.Convert.Input, &config.Convert.Output, &config.Convert.IncludeRaw)
	commands.SetupSupplementFlags(&config.Supplement.Input, &config.Supplement.Output,
		&config.Supplement.Data, &config.Supplement.File)

	// Build the eMASS endpoint commands from the embedded catalog
	registry, err := emass.LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "saf: broken endpoint catalog: %v\n", err)
		os.Exit(1)
	}

	// The client is built on first use so that help never needs a configuration
	invoker := emass.NewInvoker(func() (*emass.Client, error) {
		return emass.ConfigConnector(config.Global.EnvFile, config.Global.Timeout)()
	})
	if err := commands.SetupEndpointCommands(registry, handlers.HandleEndpointGet(registry, invoker)); err != nil {
		fmt.Fprintf(os.Stderr, "saf: %v\n", err)
		os.Exit(1)
	}

	// Setup command handlers
	setupCommandHandlers(registry)
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers(registry *endpoint.Registry) {
	getCmd, configureCmd := commands.GetEmasserCommands()
	getCmd.RunE = handlers.HandleUnknownEndpoint(registry)
	configureCmd.RunE = handlers.HandleConfigure

	commands.GetConvertCommands().RunE = handlers.HandleNetsparker2HDF

	targetRead, targetWrite, passthroughRead, passthroughWrite := commands.GetSupplementCommands()
	targetRead.RunE = handlers.HandleSupplementRead(hdf.AttrTarget)
	targetWrite.RunE = handlers.HandleSupplementWrite(hdf.AttrTarget)
	passthroughRead.RunE = handlers.HandleSupplementRead(hdf.AttrPassthrough)
	passthroughWrite.RunE = handlers.HandleSupplementWrite(hdf.AttrPassthrough)

	commands.GetVersionCommand().RunE = handlers.HandleVersion
}

// main is the main entry point
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
