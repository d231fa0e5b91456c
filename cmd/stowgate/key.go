package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stowgate"
)

var keyCmd = &cobra.Command{
	Use:   "key [path-hint]",
	Short: "Print a storage key derived from a path hint",
	Long: `Derive a storage key the same way the prepare endpoint does.

Examples:
  stowgate key brand/logos/ --ext webp
  stowgate key --ext pdf --count 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKey,
}

func init() {
	keyCmd.Flags().String("ext", "", "file extension to append")
	keyCmd.Flags().Int("count", 1, "number of keys to print")

	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	var hint string
	if len(args) == 1 {
		hint = args[0]
	}

	ext, _ := cmd.Flags().GetString("ext")
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	for range count {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), stowgate.DeriveKey(hint, ext)); err != nil {
			return err
		}
	}
	return nil
}
