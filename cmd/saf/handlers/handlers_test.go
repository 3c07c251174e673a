package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/secureonelabs/saf/cmd/saf/commands"
	"github.com/secureonelabs/saf/cmd/saf/config"
	"github.com/secureonelabs/saf/internal/convert"
	"github.com/secureonelabs/saf/internal/emass"
	"github.com/secureonelabs/saf/internal/emass/emasstest"
	"github.com/secureonelabs/saf/internal/endpoint"
	"github.com/secureonelabs/saf/internal/hdf"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetConfig restores the CLI configuration after the test.
func resetConfig(t *testing.T) {
	t.Helper()
	global, conv, supp := config.Global, config.Convert, config.Supplement
	t.Cleanup(func() {
		config.Global, config.Convert, config.Supplement = global, conv, supp
	})
	config.Global.LogLevel = "ERROR"
	config.Global.Format = "json"
}

// runGet executes `saf get <args...>` against the fake eMASS API.
func runGet(t *testing.T, srv *emasstest.Server, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	reg, err := emass.LoadRegistry()
	require.NoError(t, err)
	inv := emass.NewInvoker(func() (*emass.Client, error) {
		return emass.NewClient(&emass.Config{
			HostURL:   srv.URL,
			APIKey:    emasstest.APIKey,
			UserUID:   emasstest.UserUID,
			VerifySSL: true,
		}, 0)
	})

	cmds, err := commands.NewEndpointCommands(reg, HandleEndpointGet(reg, inv))
	require.NoError(t, err)

	root := &cobra.Command{Use: "saf", SilenceUsage: true, SilenceErrors: true}
	getCmd := &cobra.Command{Use: "get", Args: cobra.ArbitraryArgs, RunE: HandleUnknownEndpoint(reg)}
	getCmd.AddCommand(cmds...)
	root.AddCommand(getCmd)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"get"}, args...))

	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestHandleEndpointGetSuccess(t *testing.T) {
	resetConfig(t)
	srv := emasstest.NewServer(t)

	stdout, stderr, err := runGet(t, srv, "workflow_instances", "all", "--includeComments", "-i", "2")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, `"path": "/api/workflows/instances"`)
	assert.Contains(t, stdout, `"includeComments": "true"`)
	assert.Contains(t, stdout, `"pageIndex": "2"`)
	assert.NotContains(t, stdout, "sinceDate", "unset flags are not sent")
}

func TestHandleEndpointGetYAML(t *testing.T) {
	resetConfig(t)
	config.Global.Format = "yaml"
	srv := emasstest.NewServer(t)

	stdout, _, err := runGet(t, srv, "test", "connection")
	require.NoError(t, err)
	assert.Contains(t, stdout, "success: true")
}

func TestHandleEndpointGetRejectsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing action", args: []string{"workflow_instances"}, want: endpoint.ErrMissingAction},
		{name: "unknown action", args: []string{"workflow_instances", "byId"}, want: endpoint.ErrActionNotFound},
		{name: "missing required flag", args: []string{"workflow_instances", "byInstanceId"}, want: endpoint.ErrMissingRequiredParameter},
		{name: "extra argument", args: []string{"workflow_instances", "all", "extra"}, want: endpoint.ErrUnexpectedArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)
			srv := emasstest.NewServer(t)

			_, stderr, err := runGet(t, srv, tt.args...)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, stderr, "Invalid arguments")
			assert.Contains(t, stderr, "get workflow_instances [-h or --help]")
			assert.Contains(t, stderr, "get workflow_instances byInstanceId")
			assert.Empty(t, srv.Requests(), "nothing may be sent")
		})
	}
}

func TestHandleUnknownEndpoint(t *testing.T) {
	resetConfig(t)
	srv := emasstest.NewServer(t)

	_, stderr, err := runGet(t, srv, "bogus", "all")
	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrUnknownEndpoint)
	assert.Contains(t, err.Error(), `"bogus"`)
	assert.Contains(t, stderr, "Unknown endpoint")
	assert.Contains(t, stderr, "saf get workflow_instances\n")
	assert.Contains(t, stderr, "saf get cmmc\n")
	assert.Empty(t, srv.Requests())
}

func TestHandleUnknownEndpointWithoutArgsShowsHelp(t *testing.T) {
	resetConfig(t)
	srv := emasstest.NewServer(t)

	stdout, _, err := runGet(t, srv)
	require.NoError(t, err)
	assert.Contains(t, stdout, "workflow_instances")
}

func TestHandleEndpointGetReportsAPIFailure(t *testing.T) {
	resetConfig(t)
	srv := emasstest.NewServer(t)

	stdout, stderr, err := runGet(t, srv, "system", "byId", "--systemId", emasstest.MissingSystemID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "System request failed")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "status: 404")
	assert.Contains(t, stderr, "System not found")
}

func TestHandleNetsparker2HDF(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	config.Convert.Input = filepath.Join("..", "..", "..", "internal", "convert", "netsparker", "testdata", "sample.xml")
	config.Convert.Output = filepath.Join(dir, "scan-hdf")
	config.Convert.IncludeRaw = true

	require.NoError(t, HandleNetsparker2HDF(&cobra.Command{}, nil))

	doc, err := hdf.Load(filepath.Join(dir, "scan-hdf.json"))
	require.NoError(t, err)
	assert.Contains(t, doc, "profiles")
	passthrough, ok := doc["passthrough"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, passthrough, "raw")
}

func TestHandleNetsparker2HDFRejectsOtherFormats(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	config.Convert.Input = filepath.Join(dir, "burp.xml")
	config.Convert.Output = filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(config.Convert.Input, []byte(`<issues burpVersion="2023"/>`), 0o644))

	err := HandleNetsparker2HDF(&cobra.Command{}, nil)
	assert.ErrorIs(t, err, convert.ErrFormatMismatch)
	assert.NoFileExists(t, config.Convert.Output)
}

func TestHandleSupplementWriteAndRead(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "hdf.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"a":1}`), 0o644))

	config.Supplement.Input = in
	config.Supplement.Data = `{"a":5}`
	require.NoError(t, HandleSupplementWrite(hdf.AttrTarget)(&cobra.Command{}, nil))

	written, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"target\": {\n    \"a\": 5\n  }\n}\n", string(written))

	config.Supplement.Data = ""
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, HandleSupplementRead(hdf.AttrTarget)(cmd, nil))
	assert.Equal(t, "{\n  \"a\": 5\n}\n", out.String())
}

func TestHandleSupplementWriteNeedsExactlyOneSource(t *testing.T) {
	resetConfig(t)
	config.Supplement.Input = filepath.Join(t.TempDir(), "missing.json")
	config.Supplement.Data = "{}"
	config.Supplement.File = "payload.json"

	err := HandleSupplementWrite(hdf.AttrPassthrough)(&cobra.Command{}, nil)
	assert.ErrorIs(t, err, hdf.ErrConfiguration)
}

func TestHandleSupplementReadToFile(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "hdf.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"passthrough":{"ticket":"SEC-12"}}`), 0o644))

	config.Supplement.Input = in
	config.Supplement.Output = filepath.Join(dir, "pt.json")
	require.NoError(t, HandleSupplementRead(hdf.AttrPassthrough)(&cobra.Command{}, nil))

	data, err := os.ReadFile(config.Supplement.Output)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ticket":"SEC-12"}`, string(data))
}

func TestHandleConfigure(t *testing.T) {
	resetConfig(t)
	for _, key := range []string{
		emass.EnvAPIKey, emass.EnvUserUID, emass.EnvHostURL, emass.EnvClientCert,
		emass.EnvClientKey, emass.EnvCACert, emass.EnvVerifySSL, emass.EnvDebugging,
	} {
		t.Setenv(key, "")
	}
	config.Global.EnvFile = filepath.Join(t.TempDir(), ".env")

	saved := configureForm
	t.Cleanup(func() { configureForm = saved })
	configureForm = func(cfg *emass.Config) error {
		assert.True(t, cfg.VerifySSL, "defaults are offered")
		cfg.HostURL = " https://emass.example.mil/ "
		cfg.APIKey = "abc"
		cfg.UserUID = "jdoe"
		return nil
	}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, HandleConfigure(cmd, nil))
	assert.Contains(t, out.String(), "eMASS settings written to")

	cfg, err := emass.LoadConfig(config.Global.EnvFile)
	require.NoError(t, err)
	assert.Equal(t, "https://emass.example.mil", cfg.HostURL)
	assert.Equal(t, "abc", cfg.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestHandleConfigureRejectsInvalidAnswers(t *testing.T) {
	resetConfig(t)
	for _, key := range []string{emass.EnvAPIKey, emass.EnvUserUID, emass.EnvHostURL} {
		t.Setenv(key, "")
	}
	config.Global.EnvFile = filepath.Join(t.TempDir(), ".env")

	saved := configureForm
	t.Cleanup(func() { configureForm = saved })
	configureForm = func(cfg *emass.Config) error {
		cfg.HostURL = "https://emass.example.mil"
		return nil
	}

	err := HandleConfigure(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMASSER_API_KEY is required")
	assert.NoFileExists(t, config.Global.EnvFile)
}

func TestHandleVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, HandleVersion(cmd, nil))
	assert.Contains(t, out.String(), "saf "+config.Version)
}
