// Package s3 stores avatars in an AWS S3 bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/storage"
)

// PutObjectAPI is the subset of *s3.Client the store needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Options struct {
	Region string
	// Endpoint overrides the AWS endpoint and switches to path-style
	// addressing, for S3-compatible services.
	Endpoint string
	Bucket   string
}

type Store struct {
	client PutObjectAPI
	bucket string
}

// New loads credentials from the default AWS chain.
func New(ctx context.Context, opts Options) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, opts.Bucket), nil
}

func NewWithClient(client PutObjectAPI, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("s3_store")
	if err := storage.CheckKey(key); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		log.Error("failed to put s3://%s/%s: %v", s.bucket, key, err)
		return "", err
	}
	log.Debug("put s3://%s/%s (%d bytes)", s.bucket, key, len(data))
	return storage.ObjectPath(s.bucket, key), nil
}

var _ storage.ObjectStore = (*Store)(nil)
