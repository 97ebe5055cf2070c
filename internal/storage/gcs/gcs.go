// Package gcs stores avatars in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/vytor/roster/internal/logger"
	objstore "github.com/vytor/roster/internal/storage"
)

// WriterFunc opens a writer for one object. The object is committed when
// the writer closes without error.
type WriterFunc func(ctx context.Context, bucket, key, contentType string) io.WriteCloser

type Store struct {
	newWriter WriterFunc
	bucket    string
	client    *storage.Client
}

// New creates a client from application default credentials, or from
// credentialsFile when set.
func New(ctx context.Context, bucket, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	store := NewWithWriter(clientWriter(client), bucket)
	store.client = client
	return store, nil
}

func NewWithWriter(newWriter WriterFunc, bucket string) *Store {
	return &Store{newWriter: newWriter, bucket: bucket}
}

func clientWriter(client *storage.Client) WriterFunc {
	return func(ctx context.Context, bucket, key, contentType string) io.WriteCloser {
		w := client.Bucket(bucket).Object(key).NewWriter(ctx)
		w.ContentType = contentType
		return w
	}
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("gcs_store")
	if err := objstore.CheckKey(key); err != nil {
		return "", err
	}

	w := s.newWriter(ctx, s.bucket, key, contentType)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		log.Error("failed to write gs://%s/%s: %v", s.bucket, key, err)
		return "", err
	}
	// The object only exists once Close succeeds.
	if err := w.Close(); err != nil {
		log.Error("failed to finalize gs://%s/%s: %v", s.bucket, key, err)
		return "", err
	}
	log.Debug("put gs://%s/%s (%d bytes)", s.bucket, key, len(data))
	return objstore.ObjectPath(s.bucket, key), nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ objstore.ObjectStore = (*Store)(nil)
