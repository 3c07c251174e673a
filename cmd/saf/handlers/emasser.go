package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/secureonelabs/saf/cmd/saf/utils"
	"github.com/secureonelabs/saf/internal/endpoint"
	"github.com/secureonelabs/saf/internal/logging"
	"github.com/spf13/cobra"
)

// HandleEndpointGet returns the RunE shared by all `saf emasser get
// <endpoint>` commands. The endpoint is the command's name and the optional
// positional argument is the action token. Only flags the user actually set
// are bound; anything else stays absent.
//
// Resolution and binding errors print the endpoint's usage hint and never
// reach the network. A failed remote call is rendered in full and then
// reported as the command's error so the process exits non-zero.
func HandleEndpointGet(reg *endpoint.Registry, inv endpoint.Invoker) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		utils.SetupLogging()

		def, err := reg.Lookup(cmd.Name())
		if err != nil {
			return err
		}

		p := presenter(cmd)
		if len(args) > 1 {
			p.Warn(endpoint.UsageHint(cmd.Parent().CommandPath(), def))
			return &endpoint.ResolveError{
				Endpoint: def.Name,
				Action:   strings.Join(args[1:], " "),
				Err:      endpoint.ErrUnexpectedArgument,
			}
		}

		var action string
		if len(args) > 0 {
			action = args[0]
		}

		flags, err := suppliedFlags(cmd, def)
		if err != nil {
			return err
		}

		outcome, err := endpoint.Run(cmd.Context(), reg, inv, endpoint.Request{
			Endpoint: def.Name,
			Action:   action,
			Flags:    flags,
		})
		if err != nil {
			var resolveErr *endpoint.ResolveError
			if errors.As(err, &resolveErr) || errors.Is(err, endpoint.ErrMissingRequiredParameter) {
				p.Warn(endpoint.UsageHint(cmd.Parent().CommandPath(), def))
			}
			logging.Debug("Rejected %s invocation: %v", def.Name, err)
			return err
		}

		if err := p.Outcome(outcome); err != nil {
			return err
		}
		if !outcome.OK() {
			return fmt.Errorf("%s request failed", outcome.Label)
		}
		logging.Success("Retrieved %s", outcome.Label)
		return nil
	}
}

// HandleUnknownEndpoint is the RunE of `saf emasser get` itself. It only runs
// when the first argument names no endpoint command.
func HandleUnknownEndpoint(reg *endpoint.Registry) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		utils.SetupLogging()

		if len(args) == 0 {
			return cmd.Help()
		}
		presenter(cmd).Warn(endpoint.EndpointHint(cmd.CommandPath(), reg))
		return fmt.Errorf("%w: %q", endpoint.ErrUnknownEndpoint, args[0])
	}
}

// suppliedFlags reads the values of the endpoint flags the user set.
func suppliedFlags(cmd *cobra.Command, def *endpoint.EndpointDefinition) (map[string]any, error) {
	supplied := make(map[string]any)
	fs := cmd.Flags()

	for _, p := range def.Flags() {
		if !fs.Changed(p.Flag) {
			continue
		}

		var (
			value any
			err   error
		)
		switch p.Kind {
		case endpoint.KindBool:
			value, err = fs.GetBool(p.Flag)
		case endpoint.KindInt:
			value, err = fs.GetInt(p.Flag)
		case endpoint.KindStrings:
			value, err = fs.GetStringSlice(p.Flag)
		default:
			value, err = fs.GetString(p.Flag)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read --%s: %w", p.Flag, err)
		}
		supplied[p.Flag] = value
	}
	return supplied, nil
}
