// Package s3store provides an S3-compatible object store for stowgate built
// on aws-sdk-go-v2. It works against AWS S3, Cloudflare R2 and any other
// endpoint speaking the S3 API.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sagarc03/stowgate"
)

// PutObjectAPI is the subset of *s3.Client used by Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// Store writes objects into a single bucket.
type Store struct {
	api    PutObjectAPI
	bucket string
}

var _ stowgate.ObjectStore = (*Store)(nil)

// New builds an S3 client from cfg. Static credentials are used when an
// access key is configured, otherwise the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 store: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 store: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, cfg.Bucket), nil
}

// NewWithClient creates a Store around an existing client.
func NewWithClient(api PutObjectAPI, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

// Put uploads body to key. Bodies that cannot seek are buffered, up to
// stowgate.MaxUploadBytes, so the request can be signed.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, opts stowgate.PutOptions) error {
	rs, size, err := seekable(body, opts.Size)
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          rs,
		ContentLength: aws.Int64(size),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func seekable(body io.Reader, declared int64) (io.ReadSeeker, int64, error) {
	if rs, ok := body.(io.ReadSeeker); ok && declared >= 0 {
		return rs, declared, nil
	}

	data, err := io.ReadAll(io.LimitReader(body, stowgate.MaxUploadBytes+1))
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > stowgate.MaxUploadBytes {
		return nil, 0, stowgate.ErrPayloadTooLarge
	}
	return bytes.NewReader(data), int64(len(data)), nil
}
