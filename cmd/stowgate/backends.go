package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sagarc03/stowgate"
	"github.com/sagarc03/stowgate/config"
	"github.com/sagarc03/stowgate/filesystem"
	"github.com/sagarc03/stowgate/miniostore"
	"github.com/sagarc03/stowgate/s3store"
)

// openObjectStore builds the configured object store. The "none" type
// returns a nil store, leaving uploads unbound.
func openObjectStore(ctx context.Context, cfg config.StorageConfig) (stowgate.ObjectStore, func(), error) {
	noop := func() {}

	switch cfg.Type {
	case "none":
		slog.Warn("object store not bound, uploads will fail")
		return nil, noop, nil

	case "filesystem":
		metaPath := cfg.MetaPath
		if metaPath == "" {
			metaPath = cfg.Path + ".meta"
		}

		data, err := openRoot(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		meta, err := openRoot(metaPath)
		if err != nil {
			_ = data.Close()
			return nil, nil, fmt.Errorf("open metadata root: %w", err)
		}

		slog.Info("using filesystem object store", "path", cfg.Path, "meta_path", metaPath)
		return filesystem.NewStore(data, meta), func() {
			_ = data.Close()
			_ = meta.Close()
		}, nil

	case "s3":
		store, err := s3store.New(ctx, s3store.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using s3 object store", "bucket", cfg.S3.Bucket, "endpoint", cfg.S3.Endpoint)
		return store, noop, nil

	case "minio":
		endpoint, secure := minioEndpoint(cfg.S3.Endpoint, cfg.S3.Secure)
		store, err := miniostore.New(ctx, miniostore.Config{
			Endpoint:        endpoint,
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Secure:          secure,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using minio object store", "bucket", cfg.S3.Bucket, "endpoint", cfg.S3.Endpoint)
		return store, noop, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// minioEndpoint accepts either host:port or a URL; a scheme overrides secure.
func minioEndpoint(endpoint string, secure bool) (string, bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	default:
		return endpoint, secure
	}
}

func openRoot(path string) (*os.Root, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, err
	}
	return os.OpenRoot(path)
}
