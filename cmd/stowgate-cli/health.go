package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errServerUnhealthy = errors.New("server reported unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		status, err := client.Health(cmd.Context())
		if err != nil {
			_ = getFormatter().FormatError(cmd.ErrOrStderr(), err)
			return err
		}
		if err := getFormatter().FormatHealth(cmd.OutOrStdout(), status); err != nil {
			return err
		}
		if !status.OK {
			return errServerUnhealthy
		}
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the server's row store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		result, err := client.Tables(cmd.Context())
		if err != nil {
			_ = getFormatter().FormatError(cmd.ErrOrStderr(), err)
			return err
		}
		return getFormatter().FormatTables(cmd.OutOrStdout(), result)
	},
}
