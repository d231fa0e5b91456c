package miniostore_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/sagarc03/stowgate"
	"github.com/sagarc03/stowgate/miniostore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMinio struct {
	mock.Mock
}

func (m *MockMinio) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinio) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockMinio) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func TestStore_Put(t *testing.T) {
	t.Run("passes size and content type", func(t *testing.T) {
		api := new(MockMinio)
		store := miniostore.NewWithClient(api, "assets")
		ctx := context.Background()
		body := strings.NewReader("hello")

		api.On("PutObject", ctx, "assets", "docs/a.txt", body, int64(5), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "text/plain"
		})).Return(minio.UploadInfo{Key: "docs/a.txt", Size: 5}, nil)

		err := store.Put(ctx, "docs/a.txt", body, stowgate.PutOptions{ContentType: "text/plain", Size: 5})
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("unknown size", func(t *testing.T) {
		api := new(MockMinio)
		store := miniostore.NewWithClient(api, "assets")
		ctx := context.Background()

		api.On("PutObject", ctx, "assets", "k", mock.Anything, int64(-1), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := store.Put(ctx, "k", strings.NewReader("x"), stowgate.PutOptions{Size: -1})
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("error is wrapped", func(t *testing.T) {
		api := new(MockMinio)
		store := miniostore.NewWithClient(api, "assets")
		ctx := context.Background()
		apiErr := errors.New("bucket gone")

		api.On("PutObject", ctx, "assets", "k", mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, apiErr)

		err := store.Put(ctx, "k", strings.NewReader("x"), stowgate.PutOptions{Size: 1})
		assert.ErrorIs(t, err, apiErr)
	})
}

func TestStore_EnsureBucket(t *testing.T) {
	t.Run("creates missing bucket", func(t *testing.T) {
		api := new(MockMinio)
		store := miniostore.NewWithClient(api, "assets")
		ctx := context.Background()

		api.On("BucketExists", ctx, "assets").Return(false, nil)
		api.On("MakeBucket", ctx, "assets", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)

		require.NoError(t, store.EnsureBucket(ctx, "us-east-1"))
		api.AssertExpectations(t)
	})

	t.Run("existing bucket untouched", func(t *testing.T) {
		api := new(MockMinio)
		store := miniostore.NewWithClient(api, "assets")
		ctx := context.Background()

		api.On("BucketExists", ctx, "assets").Return(true, nil)

		require.NoError(t, store.EnsureBucket(ctx, ""))
		api.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		api := new(MockMinio)
		store := miniostore.NewWithClient(api, "assets")
		ctx := context.Background()

		api.On("BucketExists", ctx, "assets").Return(false, errors.New("unreachable"))

		assert.Error(t, store.EnsureBucket(ctx, ""))
	})
}

func TestNew_RequiresEndpointAndBucket(t *testing.T) {
	_, err := miniostore.New(context.Background(), miniostore.Config{Bucket: "assets"})
	assert.Error(t, err)

	_, err = miniostore.New(context.Background(), miniostore.Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}
