package main

import (
	"context"
	"os"

	"github.com/sagarc03/stowgate/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile    string
	profile    string
	endpoint   string
	adminToken string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:     "stowgate-cli",
	Version: version,
	Short:   "Client for a stowgate upload gateway",
	Long: `stowgate-cli talks to a stowgate server.

Uploads run the gateway's two-phase flow: the server derives a key from the
path hint and file extension, then the bytes are sent to that key.

Settings are resolved from the selected profile, then STOWGATE_* environment
variables, then flags.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "profile file (default: ~/.stowgate/config.yaml, env: STOWGATE_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile name (env: STOWGATE_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "server URL (default: http://localhost:5708, env: STOWGATE_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&adminToken, "admin-token", "t", "", "admin token (env: STOWGATE_ADMIN_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func buildConfig() (*clientcli.Config, error) {
	return clientcli.ResolveConfig(clientcli.ResolveOptions{
		ConfigPath: cfgFile,
		Profile:    profile,
		Flags: &clientcli.Config{
			Endpoint:   endpoint,
			AdminToken: adminToken,
		},
	})
}

func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	return clientcli.New(cfg)
}

// getConfigPath returns the profile file the configure commands edit.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := clientcli.ConfigPathFromEnv(); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}
