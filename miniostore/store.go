// Package miniostore provides a MinIO object store for stowgate.
package miniostore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sagarc03/stowgate"
)

// API is the subset of *minio.Client used by Store.
type API interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Config struct {
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Secure          bool
}

// Store writes objects into a single MinIO bucket.
type Store struct {
	api    API
	bucket string
}

var _ stowgate.ObjectStore = (*Store)(nil)

// New connects to MinIO and makes sure the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("minio store: endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio store: new client: %w", err)
	}

	store := NewWithClient(client, cfg.Bucket)
	if err := store.EnsureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return store, nil
}

// NewWithClient creates a Store around an existing client.
func NewWithClient(api API, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

// EnsureBucket creates the bucket if it does not exist.
func (s *Store) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio store: check bucket %q: %w", s.bucket, err)
	}

	if !exists {
		if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("minio store: create bucket %q: %w", s.bucket, err)
		}
	}
	return nil
}

// Put streams body to key. A size of -1 lets the client upload in parts.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, opts stowgate.PutOptions) error {
	_, err := s.api.PutObject(ctx, s.bucket, key, body, opts.Size, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", key, err)
	}
	return nil
}
