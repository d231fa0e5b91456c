package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stowgate"
	"github.com/sagarc03/stowgate/config"
	"github.com/sagarc03/stowgate/database"
	stowgatehttp "github.com/sagarc03/stowgate/http"
	"github.com/sagarc03/stowgate/keybackend"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the stowgate HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port (env: STOWGATE_SERVER_PORT)")
	serveCmd.Flags().String("admin-token", "", "shared admin secret for upload routes (env: STOWGATE_ADMIN_TOKEN)")
	serveCmd.Flags().String("admin-token-file", "", "file holding the admin secret, overrides --admin-token")
	serveCmd.Flags().String("allow-origin", "", "Access-Control-Allow-Origin value (default: *, env: STOWGATE_CORS_ALLOW_ORIGIN)")
	serveCmd.Flags().String("public-base-url", "", "base URL for publicUrl in upload results (env: STOWGATE_UPLOADS_PUBLIC_BASE_URL)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	objects, closeObjects, err := openObjectStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open object store: %w", err)
	}
	defer closeObjects()

	rows, closeRows, err := database.Connect(ctx, database.Config{
		Type: cfg.Database.Type,
		DSN:  cfg.Database.DSN,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeRows()
	slog.Info("row store configured", "type", cfg.Database.Type)

	uploads := stowgate.NewUploadService(objects, stowgate.UploadConfig{
		PublicBaseURL: cfg.Uploads.PublicBaseURL,
	})

	diagnostics, err := stowgate.NewDiagnosticsService(rows, cfg.Database.Tables)
	if err != nil {
		return fmt.Errorf("create diagnostics service: %w", err)
	}

	adminToken, err := keybackend.ResolveToken(keybackend.TokenConfig{
		Token: cfg.Admin.Token,
		File:  cfg.Admin.TokenFile,
	})
	if err != nil {
		return fmt.Errorf("resolve admin token: %w", err)
	}
	if adminToken == "" {
		slog.Warn("admin token not set, upload routes will reject every request")
	}

	handler := stowgatehttp.NewHandler(&stowgatehttp.HandlerConfig{
		Env:        cfg.Env,
		AdminToken: adminToken,
		Headers:    stowgatehttp.HeaderConfig{AllowOrigin: cfg.CORS.AllowOrigin},
	}, uploads, diagnostics)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "storage", cfg.Storage.Type, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
