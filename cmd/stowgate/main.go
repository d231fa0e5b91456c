package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stowgate/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "stowgate",
	Short:   "Upload gateway in front of an object store",
	Long: `Stowgate is a small HTTP gateway that hands out upload tickets
and streams uploaded bytes into a filesystem, S3-compatible or MinIO
object store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if f, _ := cmd.Flags().GetString("config"); f != "" {
			files = append(files, f)
		}

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("env", "", "environment label, prod/production enables JSON logs (env: STOWGATE_ENV)")
	rootCmd.PersistentFlags().String("storage-type", "", "object store: none, filesystem, s3, minio (default: filesystem, env: STOWGATE_STORAGE_TYPE)")
	rootCmd.PersistentFlags().String("storage-path", "", "filesystem storage directory (default: ./data, env: STOWGATE_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("db-type", "", "row store: none, sqlite, postgres (default: none, env: STOWGATE_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "row store connection string (env: STOWGATE_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: STOWGATE_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
