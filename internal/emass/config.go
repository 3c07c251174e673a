package emass

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/secureonelabs/saf/internal/logging"
	"github.com/secureonelabs/saf/internal/validate"
	"github.com/spf13/viper"
)

// Environment keys understood in the .env file and the process environment.
const (
	EnvAPIKey     = "EMASSER_API_KEY"
	EnvUserUID    = "EMASSER_USER_UID"
	EnvHostURL    = "EMASSER_HOST_URL"
	EnvClientCert = "EMASSER_CLIENT_CERT"
	EnvClientKey  = "EMASSER_CLIENT_KEY"
	EnvCACert     = "EMASSER_CA_CERT"
	EnvVerifySSL  = "EMASSER_VERIFY_SSL"
	EnvDebugging  = "EMASSER_DEBUGGING"
)

// DefaultEnvFile is read from the working directory when --env-file is not given.
const DefaultEnvFile = ".env"

// Config is the eMASS connection context: where the API lives and how to
// authenticate against it. It is built once per process invocation.
type Config struct {
	HostURL    string `key:"EMASSER_HOST_URL" validate:"required,url"`
	APIKey     string `key:"EMASSER_API_KEY" validate:"required"`
	UserUID    string `key:"EMASSER_USER_UID" validate:"required"`
	ClientCert string `key:"EMASSER_CLIENT_CERT" validate:"omitempty,file"`
	ClientKey  string `key:"EMASSER_CLIENT_KEY" validate:"omitempty,file"`
	CACert     string `key:"EMASSER_CA_CERT" validate:"omitempty,file"`
	VerifySSL  bool   `key:"EMASSER_VERIFY_SSL"`
	Debugging  bool   `key:"EMASSER_DEBUGGING"`
}

// LoadConfig reads connection settings from envFile (dotenv format, optional)
// and the EMASSER_* environment variables. Environment variables win over the
// file. The result is not validated; call Validate before connecting.
func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault(EnvVerifySSL, true)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
			logging.Debug("No env file at %s, using environment only", envFile)
		} else {
			logging.Debug("Loaded eMASS settings from %s", envFile)
		}
	}
	v.AutomaticEnv()

	return &Config{
		HostURL:    strings.TrimRight(v.GetString(EnvHostURL), "/"),
		APIKey:     v.GetString(EnvAPIKey),
		UserUID:    v.GetString(EnvUserUID),
		ClientCert: v.GetString(EnvClientCert),
		ClientKey:  v.GetString(EnvClientKey),
		CACert:     v.GetString(EnvCACert),
		VerifySSL:  v.GetBool(EnvVerifySSL),
		Debugging:  v.GetBool(EnvDebugging),
	}, nil
}

// Validate checks required settings, URL shape and that referenced
// certificate files exist. A client certificate needs its key and vice versa.
func (c *Config) Validate() error {
	if err := validate.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid eMASS configuration: %w", err)
	}
	if (c.ClientCert == "") != (c.ClientKey == "") {
		return fmt.Errorf("invalid eMASS configuration: %s and %s must be set together", EnvClientCert, EnvClientKey)
	}
	return nil
}

// EnvLines renders c as dotenv lines in a fixed key order.
func (c *Config) EnvLines() []string {
	return []string{
		fmt.Sprintf("%s=%s", EnvHostURL, c.HostURL),
		fmt.Sprintf("%s=%s", EnvAPIKey, c.APIKey),
		fmt.Sprintf("%s=%s", EnvUserUID, c.UserUID),
		fmt.Sprintf("%s=%s", EnvClientCert, c.ClientCert),
		fmt.Sprintf("%s=%s", EnvClientKey, c.ClientKey),
		fmt.Sprintf("%s=%s", EnvCACert, c.CACert),
		fmt.Sprintf("%s=%t", EnvVerifySSL, c.VerifySSL),
		fmt.Sprintf("%s=%t", EnvDebugging, c.Debugging),
	}
}
