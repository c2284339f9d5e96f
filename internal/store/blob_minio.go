package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioBlobStorage keeps uploaded bytes in an S3-compatible bucket.
type minioBlobStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOBlobStorage connects to the configured endpoint and makes sure the
// bucket exists.
func NewMinIOBlobStorage(ctx context.Context, cfg config.MinIO) (BlobStorage, error) {
	storage, err := newMinIOBlobStorage(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	return storage, nil
}

// newMinIOBlobStorage uses the default transport when transport is nil.
func newMinIOBlobStorage(ctx context.Context, cfg config.MinIO, transport http.RoundTripper) (*minioBlobStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking minio bucket: %w", err)
	}

	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating minio bucket: %w", err)
		}
	}

	return &minioBlobStorage{client: client, bucket: cfg.Bucket}, nil
}

func (s *minioBlobStorage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := s.client.PutObject(ctx,
		s.bucket,
		key,
		bytes.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return fmt.Errorf("error uploading to minio: %w", err)
	}

	return nil
}

func (s *minioBlobStorage) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapError(err)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, s.mapError(err)
	}

	return content, nil
}

func (s *minioBlobStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *minioBlobStorage) mapError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrBlobNotFound
	}

	return fmt.Errorf("minio error: %w", err)
}
