package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stowgate"
	"github.com/sagarc03/stowgate/config"
)

var addCmd = &cobra.Command{
	Use:   "add [flags] <file1> [file2] ...",
	Short: "Upload local files straight into the configured object store",
	Long: `Upload local files into the object store without going through HTTP.

Each file gets a freshly derived key, exactly as if it had been sent
through the prepare and put endpoints.

Examples:
  # Add a single file under brand/logos/
  stowgate add --hint brand/logos/ logo.webp

  # Add a directory recursively
  stowgate add -r --hint assets/ ./public`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addHint      string
	addRecursive bool
)

func init() {
	addCmd.Flags().StringVar(&addHint, "hint", "", "path hint used to derive keys")
	addCmd.Flags().BoolVarP(&addRecursive, "recursive", "r", false, "recursively add directories")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	objects, closeObjects, err := openObjectStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open object store: %w", err)
	}
	defer closeObjects()

	uploads := stowgate.NewUploadService(objects, stowgate.UploadConfig{
		PublicBaseURL: cfg.Uploads.PublicBaseURL,
	})

	var files []string
	for _, arg := range args {
		found, collectErr := collectFiles(arg, addRecursive)
		if collectErr != nil {
			return fmt.Errorf("collect files from %s: %w", arg, collectErr)
		}
		files = append(files, found...)
	}

	for _, path := range files {
		result, addErr := addFile(cmd, uploads, path)
		if addErr != nil {
			return fmt.Errorf("add %s: %w", path, addErr)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", result.Key, result.PublicURL)
	}

	slog.Info("add complete", "added", len(files))
	return nil
}

func addFile(cmd *cobra.Command, uploads *stowgate.UploadService, path string) (stowgate.PutResult, error) {
	ctx := cmd.Context()

	f, err := os.Open(path)
	if err != nil {
		return stowgate.PutResult{}, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return stowgate.PutResult{}, err
	}

	contentType := detectContentType(path)
	ticket, err := uploads.Prepare(ctx, stowgate.PrepareRequest{
		PathHint:    addHint,
		ContentType: contentType,
		Ext:         strings.TrimPrefix(filepath.Ext(path), "."),
	})
	if err != nil {
		return stowgate.PutResult{}, err
	}

	return uploads.Put(ctx, stowgate.PutRequest{
		Key:         ticket.Key,
		ContentType: contentType,
		Size:        info.Size(),
	}, f)
}

// collectFiles gathers regular files from path, walking directories when
// recursive is set.
func collectFiles(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	if !recursive {
		return nil, fmt.Errorf("%s is a directory (use -r to add recursively)", path)
	}

	var files []string
	walkErr := filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.Type().IsRegular() {
			files = append(files, walkPath)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return files, nil
}

func detectContentType(path string) string {
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		return stowgate.DefaultContentType
	}
	return contentType
}
