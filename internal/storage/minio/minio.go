// Package minio stores avatars in an S3-compatible bucket through minio-go.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/storage"
)

// API is the subset of *minio.Client the store needs.
type API interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type Store struct {
	client API
	bucket string
}

// New connects to the endpoint with static credentials.
func New(opts Options) (*Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return NewWithClient(client, opts.Bucket), nil
}

func NewWithClient(client API, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("minio_store")
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		log.Error("failed to check bucket %s: %v", s.bucket, err)
		return err
	}
	if exists {
		return nil
	}
	log.Info("creating bucket %s", s.bucket)
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("minio_store")
	if err := storage.CheckKey(key); err != nil {
		return "", err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Error("failed to put %s/%s: %v", s.bucket, key, err)
		return "", err
	}
	log.Debug("put %s/%s etag=%s size=%d", info.Bucket, info.Key, info.ETag, info.Size)
	return storage.ObjectPath(s.bucket, key), nil
}

var _ storage.ObjectStore = (*Store)(nil)
