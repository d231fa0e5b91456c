package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sagarc03/stowgate"
	"github.com/sagarc03/stowgate/clientcli"
	"github.com/sagarc03/stowgate/filesystem"
	stowgatehttp "github.com/sagarc03/stowgate/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "cli-test-token"

func startGateway(t *testing.T) (string, string) {
	t.Helper()

	dataDir := t.TempDir()
	data, err := os.OpenRoot(dataDir)
	require.NoError(t, err)
	meta, err := os.OpenRoot(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = data.Close()
		_ = meta.Close()
	})

	uploads := stowgate.NewUploadService(filesystem.NewStore(data, meta), stowgate.UploadConfig{})
	diagnostics, err := stowgate.NewDiagnosticsService(nil, stowgate.DefaultTables())
	require.NoError(t, err)

	handler := stowgatehttp.NewHandler(&stowgatehttp.HandlerConfig{
		Env:        "cli-test",
		AdminToken: testToken,
		Headers:    stowgatehttp.HeaderConfig{AllowOrigin: "*"},
	}, uploads, diagnostics)

	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)
	return server.URL, dataDir
}

// run executes the root command with a clean environment and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, k := range []string{"STOWGATE_ENDPOINT", "STOWGATE_ADMIN_TOKEN", "STOWGATE_PROFILE", "STOWGATE_CONFIG"} {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())

	cfgFile, profile, endpoint, adminToken = "", "", "", ""
	jsonOutput, quiet, showSecrets = false, false, false
	uploadHint, uploadRecursive, uploadContentType = "", false, ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "http://localhost:5708"},
		{in: "https://gate.example.com"},
		{in: "", wantErr: true},
		{in: "ftp://gate.example.com", wantErr: true},
		{in: "localhost:5708", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := validateEndpoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUploadCommand(t *testing.T) {
	url, dataDir := startGateway(t)

	src := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0o600))

	out, err := run(t, "upload", src, "--hint", "brand", "-e", url, "-t", testToken, "--json")
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)

	key, _ := results[0]["key"].(string)
	assert.Regexp(t, `^brand/[0-9a-f-]{36}\.png$`, key)
	assert.Equal(t, "image/png", results[0]["content_type"])
	assert.Equal(t, "/"+strings.ReplaceAll(key, "/", "%2F"), results[0]["public_url"])

	stored, err := os.ReadFile(filepath.Join(dataDir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))
}

func TestUploadCommand_RequiresToken(t *testing.T) {
	url, _ := startGateway(t)
	src := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0o600))

	_, err := run(t, "upload", src, "-e", url)
	assert.ErrorIs(t, err, clientcli.ErrAdminTokenRequired)

	_, err = run(t, "upload", src, "-e", url, "-t", "wrong")
	assert.ErrorIs(t, err, clientcli.ErrUnauthorized)
}

func TestUploadCommand_FromProfile(t *testing.T) {
	url, _ := startGateway(t)
	src := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0o600))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
		{Name: "local", Endpoint: url, AdminToken: testToken, Default: true},
	}}
	require.NoError(t, cf.Save(cfgPath))

	out, err := run(t, "upload", src, "-c", cfgPath, "-q")
	require.NoError(t, err)
	assert.Regexp(t, `^/[0-9a-f-]{36}\.txt\n$`, out)
}

func TestHealthCommand(t *testing.T) {
	url, _ := startGateway(t)

	out, err := run(t, "health", "-e", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")
	assert.Contains(t, out, "cli-test")
}

func TestTablesCommand(t *testing.T) {
	url, _ := startGateway(t)

	out, err := run(t, "tables", "-e", url, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tables":[]}`, strings.TrimSpace(out))
}

func TestConfigureListAndShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, "configure", "list", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles configured.")

	cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
		{Name: "local", Endpoint: "http://localhost:5708"},
		{Name: "prod", Endpoint: "https://gate.example.com", AdminToken: "abcd-secret-wxyz"},
	}}
	require.NoError(t, cf.Save(cfgPath))

	_, err = run(t, "configure", "set-default", "prod", "-c", cfgPath)
	require.NoError(t, err)

	out, err = run(t, "configure", "show", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "prod (default)")
	assert.Contains(t, out, "abcd...wxyz")

	out, err = run(t, "configure", "list", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "* prod")
}
