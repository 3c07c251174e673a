package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/cmd/saf/utils"
	"github.com/secureonelabs/saf/internal/emass"
	"github.com/secureonelabs/saf/internal/logging"
	"github.com/secureonelabs/saf/internal/validate"
	"github.com/spf13/cobra"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#42E7FF")).
	MarginBottom(1)

// configureForm collects connection settings into cfg. Tests replace it.
var configureForm = runConfigureForm

// HandleConfigure handles `saf emasser configure`: it offers the current
// settings as defaults, validates the answers and writes them to --env-file.
func HandleConfigure(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	cfg, err := emass.LoadConfig(config.Global.EnvFile)
	if err != nil {
		return err
	}

	if err := configureForm(cfg); err != nil {
		return fmt.Errorf("configuration aborted: %w", err)
	}
	cfg.HostURL = strings.TrimRight(strings.TrimSpace(cfg.HostURL), "/")

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := emass.WriteEnvFile(config.Global.EnvFile, cfg); err != nil {
		return err
	}

	logging.Debug("Wrote %d settings", len(cfg.EnvLines()))
	fmt.Fprintf(cmd.OutOrStdout(), "eMASS settings written to %s\n", config.Global.EnvFile)
	return nil
}

func runConfigureForm(cfg *emass.Config) error {
	fmt.Println(titleStyle.Render("eMASS connection settings"))

	required := func(name string) func(string) error {
		return func(s string) error {
			return validate.ValidateRequiredString(strings.TrimSpace(s), name)
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("eMASS API URL").
				Description("Base URL of the eMASS API, e.g. https://emass.example.mil").
				Value(&cfg.HostURL).
				Validate(func(s string) error {
					return validate.ValidateField(strings.TrimSpace(s), "required,url")
				}),
			huh.NewInput().
				Title("API key").
				Value(&cfg.APIKey).
				EchoMode(huh.EchoModePassword).
				Validate(required("API key")),
			huh.NewInput().
				Title("User UID").
				Description("Unique identifier of the eMASS user").
				Value(&cfg.UserUID).
				Validate(required("User UID")),
		).Title("Connection"),
		huh.NewGroup(
			huh.NewInput().
				Title("Client certificate").
				Description("PEM file for mutual TLS (leave empty if not used)").
				Value(&cfg.ClientCert),
			huh.NewInput().
				Title("Client key").
				Description("PEM key matching the client certificate").
				Value(&cfg.ClientKey),
			huh.NewInput().
				Title("CA bundle").
				Description("PEM file with the CA that signed the eMASS server certificate").
				Value(&cfg.CACert),
			huh.NewConfirm().
				Title("Verify the server certificate?").
				Value(&cfg.VerifySSL),
		).Title("TLS"),
	).WithTheme(huh.ThemeCharm()).Run()
}
