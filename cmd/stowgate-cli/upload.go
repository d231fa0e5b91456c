package main

import (
	"github.com/sagarc03/stowgate/clientcli"
	"github.com/spf13/cobra"
)

var (
	uploadHint        string
	uploadRecursive   bool
	uploadContentType string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-path>",
	Short: "Upload a file or directory",
	Long: `Upload a file, or every file under a directory with -r.

Keys are derived by the server as <hint>/<uuid>.<ext>. For recursive uploads
each file's directory, relative to <local-path>, is appended to the hint.

Examples:
  stowgate-cli upload ./avatar.png --hint users/42
  stowgate-cli upload -r ./site --hint static
  stowgate-cli upload --content-type application/json ./data`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadHint, "hint", "", "path hint for derived keys")
	uploadCmd.Flags().BoolVarP(&uploadRecursive, "recursive", "r", false, "upload directory recursively")
	uploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "override content-type")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateWithAuth(); err != nil {
		return err
	}

	client, err := clientcli.New(cfg)
	if err != nil {
		return err
	}

	formatter := getFormatter()
	results, err := client.Upload(cmd.Context(), clientcli.UploadOptions{
		LocalPath:   args[0],
		PathHint:    uploadHint,
		ContentType: uploadContentType,
		Recursive:   uploadRecursive,
	})
	if err != nil && len(results) == 0 {
		_ = formatter.FormatError(cmd.ErrOrStderr(), err)
		return err
	}

	if fmtErr := formatter.FormatUpload(cmd.OutOrStdout(), results); fmtErr != nil {
		return fmtErr
	}
	if err != nil {
		return err
	}

	for i := range results {
		if results[i].Err != nil {
			return results[i].Err
		}
	}
	return nil
}
